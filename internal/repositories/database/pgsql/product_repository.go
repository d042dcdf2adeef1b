package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/mapping"
)

type PgxProductRepository struct {
	db querier
}

func newPgxProductRepository(db querier) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, category, cost_price, sell_price, stock, min_stock, is_archived,
	created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Category,
		&m.CostPrice,
		&m.SellPrice,
		&m.Stock,
		&m.MinStock,
		&m.IsArchived,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.ProductID, m.Name, m.Category, m.CostPrice, m.SellPrice, m.Stock, m.MinStock, m.IsArchived,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save product %s", m.ProductID)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, dbError(err, "failed to find product %s", productID)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductsByIDs retrieves multiple products by their IDs.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, dbError(err, "failed to query products by IDs")
	}
	defer rows.Close()

	products := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan product row during batch fetch")
		}
		products[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating product rows during batch fetch")
	}
	return products, nil
}

// ListProducts lists products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, includeArchived bool) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE $1 OR is_archived = FALSE
		ORDER BY name, product_id;
	`
	rows, err := r.db.Query(ctx, query, includeArchived)
	if err != nil {
		return nil, dbError(err, "failed to list products")
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan product row")
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating product rows")
	}
	return products, nil
}

// UpdateProduct updates everything but the stock, which only moves through AdjustStock.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $2, category = $3, cost_price = $4, sell_price = $5, min_stock = $6, is_archived = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE product_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ProductID, m.Name, m.Category, m.CostPrice, m.SellPrice, m.MinStock, m.IsArchived,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update product %s", m.ProductID)
	}
	return expectOneRow(tag, "product", m.ProductID)
}

// AdjustStock moves the stock in one guarded statement so it can never go below zero.
func (r *PgxProductRepository) AdjustStock(ctx context.Context, productID string, delta int, userID string, now time.Time) (int, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND stock + $2 >= 0
		RETURNING stock;
	`
	var stock int
	err := r.db.QueryRow(ctx, query, productID, delta, now, userID).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, dbError(err, "failed to adjust stock of product %s", productID)
	}

	var current int
	err = r.db.QueryRow(ctx, `SELECT stock FROM products WHERE product_id = $1;`, productID).Scan(&current)
	if err != nil {
		return 0, dbError(err, "product %s", productID)
	}
	return 0, fmt.Errorf("%w: stock of product %s would go negative (have %d, change %d)",
		apperrors.ErrConflict, productID, current, delta)
}
