package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/mapping"
)

type PgxSaleRepository struct {
	db querier
}

func newPgxSaleRepository(db querier) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{db: db}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, total, total_cost, sale_date, payment_method, person_id, person_name, status, settled_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.Total,
		&m.TotalCost,
		&m.SaleDate,
		&m.PaymentMethod,
		&m.PersonID,
		&m.PersonName,
		&m.Status,
		&m.SettledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSale inserts the sale header and its lines. Lines go out in one batch.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.SaleID, m.Total, m.TotalCost, m.SaleDate, m.PaymentMethod, m.PersonID, m.PersonName, m.Status, m.SettledAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save sale %s", m.SaleID)
	}

	batch := &pgx.Batch{}
	for i, item := range m.Items {
		batch.Queue(`
			INSERT INTO sale_items (sale_id, line_no, product_id, product_name, quantity, unit_price, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			m.SaleID, i, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.UnitCost,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	for range m.Items {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dbError(err, "failed to save items of sale %s", m.SaleID)
		}
	}
	if err := results.Close(); err != nil {
		return dbError(err, "failed to close sale items batch")
	}
	return nil
}

// FindSaleByID retrieves a sale with its lines.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	m, err := scanSale(r.db.QueryRow(ctx, query, saleID))
	if err != nil {
		return nil, dbError(err, "failed to find sale %s", saleID)
	}

	items, err := r.loadItems(ctx, []string{saleID})
	if err != nil {
		return nil, err
	}
	m.Items = items[saleID]
	d := mapping.ToDomainSale(m)
	return &d, nil
}

// saleFilterClause renders the WHERE clause of a listing. To is exclusive.
func saleFilterClause(f domain.SaleFilter) (string, []any) {
	conds := []string{"TRUE"}
	args := []any{}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.PersonID != nil {
		add("person_id = $%d", *f.PersonID)
	}
	if f.From != nil {
		add("sale_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("sale_date < $%d", *f.To)
	}
	return strings.Join(conds, " AND "), args
}

// ListSales lists sales newest first.
func (r *PgxSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	where, args := saleFilterClause(filter)
	query := `SELECT ` + saleColumns + ` FROM sales WHERE ` + where + ` ORDER BY sale_date DESC, sale_id;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to list sales")
	}
	defer rows.Close()

	headers := []models.Sale{}
	ids := []string{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan sale row")
		}
		headers = append(headers, m)
		ids = append(ids, m.SaleID)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating sale rows")
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, len(headers))
	for i, m := range headers {
		m.Items = items[m.SaleID]
		sales[i] = mapping.ToDomainSale(m)
	}
	return sales, nil
}

func (r *PgxSaleRepository) loadItems(ctx context.Context, saleIDs []string) (map[string][]models.SaleItem, error) {
	items := make(map[string][]models.SaleItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return items, nil
	}

	query := `
		SELECT sale_id, product_id, product_name, quantity, unit_price, unit_cost
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, line_no;
	`
	rows, err := r.db.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, dbError(err, "failed to query sale items")
	}
	defer rows.Close()

	for rows.Next() {
		var saleID string
		var item models.SaleItem
		if err := rows.Scan(&saleID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.UnitCost); err != nil {
			return nil, dbError(err, "failed to scan sale item row")
		}
		items[saleID] = append(items[saleID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating sale item rows")
	}
	return items, nil
}

// HasPendingSaleForProduct reports whether an unsettled sale carries the product.
func (r *PgxSaleRepository) HasPendingSaleForProduct(ctx context.Context, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sale_items i
			JOIN sales s ON s.sale_id = i.sale_id
			WHERE s.status = 'PENDING' AND i.product_id = $1
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, dbError(err, "failed to check pending sales of product %s", productID)
	}
	return exists, nil
}

// UpdateSaleSettlement persists the settlement fields only.
func (r *PgxSaleRepository) UpdateSaleSettlement(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		UPDATE sales
		SET status = $2, payment_method = $3, settled_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE sale_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.SaleID, m.Status, m.PaymentMethod, m.SettledAt, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return dbError(err, "failed to settle sale %s", m.SaleID)
	}
	return expectOneRow(tag, "sale", m.SaleID)
}

// DeleteSale removes a sale; its lines go with it (ON DELETE CASCADE).
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return dbError(err, "failed to delete sale %s", saleID)
	}
	return expectOneRow(tag, "sale", saleID)
}
