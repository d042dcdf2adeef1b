package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
)

func validTransaction() Transaction {
	return Transaction{
		TransactionID: "t1",
		Description:   "Gelo",
		Amount:        decimal.NewFromInt(30),
		Type:          Saida,
		Category:      CategoryOutros,
		Date:          time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Transaction) {}},
		{name: "zero amount is allowed", mutate: func(tx *Transaction) { tx.Amount = decimal.Zero }},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "amount finer than a centavo", mutate: func(tx *Transaction) { tx.Amount = decimal.RequireFromString("0.005") }, wantErr: true},
		{name: "trailing zeros are fine", mutate: func(tx *Transaction) { tx.Amount = decimal.RequireFromString("12.500") }},
		{name: "blank description", mutate: func(tx *Transaction) { tx.Description = "  " }, wantErr: true},
		{name: "unknown type", mutate: func(tx *Transaction) { tx.Type = "DEBIT" }, wantErr: true},
		{name: "unknown category", mutate: func(tx *Transaction) { tx.Category = "FOOD" }, wantErr: true},
		{name: "missing date", mutate: func(tx *Transaction) { tx.Date = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrValidation), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("price", decimal.RequireFromString("4.99")))
	assert.NoError(t, ValidateAmount("price", decimal.Zero))
	assert.ErrorIs(t, ValidateAmount("price", decimal.RequireFromString("-0.01")), apperrors.ErrValidation)

	err := ValidateAmount("price", decimal.RequireFromString("4.995"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "price must have at most 2 decimal places")
}

func TestTransaction_SignedAmount(t *testing.T) {
	tx := validTransaction()
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(-30)))

	tx.Type = Entrada
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(30)))
}

func TestTransactionFilter_Matches(t *testing.T) {
	tx := validTransaction()
	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	cantina := CategoryCantina

	assert.True(t, TransactionFilter{From: &from, To: &to}.Matches(tx))
	assert.False(t, TransactionFilter{To: &from}.Matches(tx))
	assert.False(t, TransactionFilter{Category: &cantina}.Matches(tx))
}

func TestSaleTotals(t *testing.T) {
	items := []SaleItem{
		{ProductID: "a", Quantity: 2, UnitPrice: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(2)},
		{ProductID: "b", Quantity: 3, UnitPrice: decimal.RequireFromString("2.50"), UnitCost: decimal.NewFromInt(1)},
	}

	total, cost := SaleTotals(items)

	assert.True(t, total.Equal(decimal.RequireFromString("17.50")), "total was %s", total)
	assert.True(t, cost.Equal(decimal.NewFromInt(7)), "cost was %s", cost)
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, FixedCostUpdate{}, StrategyFor(CategoryAluguelChacara))
	assert.Equal(t, LedgerTransaction{Category: CategoryOutros}, StrategyFor(CategoryOutros))
	assert.Equal(t, LedgerTransaction{Category: CategoryCantina}, StrategyFor(CategoryCantina))
}

func TestPerson_DerivePaymentStatus(t *testing.T) {
	p := Person{TotalPrice: decimal.NewFromInt(300)}
	assert.Equal(t, PaymentStatusPending, p.DerivePaymentStatus())

	p.AmountPaid = decimal.NewFromInt(100)
	assert.Equal(t, PaymentStatusPartial, p.DerivePaymentStatus())
	assert.True(t, p.Outstanding().Equal(decimal.NewFromInt(200)))

	p.AmountPaid = decimal.NewFromInt(350)
	assert.Equal(t, PaymentStatusPaid, p.DerivePaymentStatus())
	assert.True(t, p.Outstanding().IsZero())
}

func TestProjectionItem_ResetToPlanned(t *testing.T) {
	txnID := "t1"
	now := time.Now()
	p := ProjectionItem{Label: "Gás", IsExecuted: true, ExecutedTransactionID: &txnID, ExecutedAt: &now}

	p.ResetToPlanned()

	assert.False(t, p.IsExecuted)
	assert.Nil(t, p.ExecutedTransactionID)
	assert.Nil(t, p.ExecutedAt)
	assert.False(t, p.IsRentExecution())
}
