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

type PgxTransactionRepository struct {
	db querier
}

func newPgxTransactionRepository(db querier) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, description, amount, type, category, txn_date, payment_method,
	reference_id, person_id, person_name, is_settled, items,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Description,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.TxnDate,
		&m.PaymentMethod,
		&m.ReferenceID,
		&m.PersonID,
		&m.PersonName,
		&m.IsSettled,
		&m.Items,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a ledger row. The item snapshot is stored as JSONB.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	if m.Items == nil {
		m.Items = []models.SaleItem{}
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransactionID, m.Description, m.Amount, m.Type, m.Category, m.TxnDate, m.PaymentMethod,
		m.ReferenceID, m.PersonID, m.PersonName, m.IsSettled, m.Items,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save transaction %s", m.TransactionID)
	}
	return nil
}

// FindTransactionByID retrieves a stored ledger row.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, dbError(err, "failed to find transaction %s", transactionID)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

func transactionFilterClause(f domain.TransactionFilter) (string, []any) {
	conds := []string{"TRUE"}
	args := []any{}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != nil {
		add("type = $%d", string(*f.Type))
	}
	if f.Category != nil {
		add("category = $%d", string(*f.Category))
	}
	if f.From != nil {
		add("txn_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("txn_date < $%d", *f.To)
	}
	return strings.Join(conds, " AND "), args
}

// ListTransactions lists stored rows newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := transactionFilterClause(filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where + ` ORDER BY txn_date DESC, transaction_id;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to list transactions")
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan transaction row")
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating transaction rows")
	}
	return txns, nil
}

// UpdateTransaction rewrites the editable fields of a ledger row. Items are a snapshot and stay.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET description = $2, amount = $3, type = $4, category = $5, txn_date = $6, payment_method = $7,
			is_settled = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TransactionID, m.Description, m.Amount, m.Type, m.Category, m.TxnDate, m.PaymentMethod,
		m.IsSettled, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update transaction %s", m.TransactionID)
	}
	return expectOneRow(tag, "transaction", m.TransactionID)
}

// DeleteTransaction removes a ledger row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return dbError(err, "failed to delete transaction %s", transactionID)
	}
	return expectOneRow(tag, "transaction", transactionID)
}
