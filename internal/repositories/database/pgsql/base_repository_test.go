package pgsql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

func TestDBError(t *testing.T) {
	notFound := dbError(fmt.Errorf("scan: %w", pgx.ErrNoRows), "sale %s", "s-1")
	assert.ErrorIs(t, notFound, apperrors.ErrNotFound)
	assert.Contains(t, notFound.Error(), "sale s-1")

	dup := dbError(&pgconn.PgError{Code: "23505"}, "product %s", "p-1")
	assert.ErrorIs(t, dup, apperrors.ErrDuplicate)

	other := dbError(errors.New("connection reset"), "failed to insert sale")
	assert.ErrorIs(t, other, apperrors.ErrPersistence)
	assert.Equal(t, "failed to insert sale: connection reset", other.Error())
}

func TestExpectOneRow(t *testing.T) {
	assert.NoError(t, expectOneRow(pgconn.NewCommandTag("UPDATE 1"), "product", "p-1"))
	assert.ErrorIs(t, expectOneRow(pgconn.NewCommandTag("DELETE 0"), "product", "p-1"), apperrors.ErrNotFound)
}

func TestSaleFilterClause(t *testing.T) {
	where, args := saleFilterClause(domain.SaleFilter{})
	assert.Equal(t, "TRUE", where)
	assert.Empty(t, args)

	pending := domain.SalePending
	person := "person-1"
	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	where, args = saleFilterClause(domain.SaleFilter{Status: &pending, PersonID: &person, From: &from, To: &to})
	assert.Equal(t, "TRUE AND status = $1 AND person_id = $2 AND sale_date >= $3 AND sale_date < $4", where)
	assert.Equal(t, []any{"PENDING", "person-1", from, to}, args)
}

func TestTransactionFilterClause(t *testing.T) {
	saida := domain.Saida
	category := domain.CategoryCantina
	to := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	where, args := transactionFilterClause(domain.TransactionFilter{Type: &saida, Category: &category, To: &to})

	assert.Equal(t, "TRUE AND type = $1 AND category = $2 AND txn_date < $3", where)
	assert.Equal(t, []any{"SAIDA", "CANTINA", to}, args)
}
