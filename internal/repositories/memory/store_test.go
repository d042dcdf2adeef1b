package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

var day = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, s *Store, id, name string, stock int) {
	t.Helper()
	err := s.Repositories().ProductRepo.SaveProduct(context.Background(), domain.Product{
		ProductID: id,
		Name:      name,
		CostPrice: decimal.NewFromInt(1),
		SellPrice: decimal.NewFromInt(2),
		Stock:     stock,
	})
	require.NoError(t, err)
}

func TestAdjustStock_RefusesNegative(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p-1", "Água", 3)
	repo := s.Repositories().ProductRepo

	left, err := repo.AdjustStock(ctx, "p-1", -3, "tester", day)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	_, err = repo.AdjustStock(ctx, "p-1", -1, "tester", day)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = repo.AdjustStock(ctx, "missing", 1, "tester", day)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdjustStock_RefusesOverflow(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p-1", "Água", 3)
	repo := s.Repositories().ProductRepo

	_, err := repo.AdjustStock(ctx, "p-1", math.MaxInt, "tester", day)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	left, err := repo.AdjustStock(ctx, "p-1", math.MaxInt-3, "tester", day)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, left)
}

func TestUpdateProduct_KeepsStock(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p-1", "Água", 3)
	repo := s.Repositories().ProductRepo

	require.NoError(t, repo.UpdateProduct(ctx, domain.Product{ProductID: "p-1", Name: "Água mineral", Stock: 99}))

	p, err := repo.FindProductByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Água mineral", p.Name)
	assert.Equal(t, 3, p.Stock)
}

func TestSaveProduct_Duplicate(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p-1", "Água", 3)

	err := s.Repositories().ProductRepo.SaveProduct(context.Background(), domain.Product{ProductID: "p-1", Name: "Outro"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p-1", "Água", 5)
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if _, err := repos.ProductRepo.AdjustStock(ctx, "p-1", -2, "tester", day); err != nil {
			return err
		}
		if err := repos.SaleRepo.SaveSale(ctx, domain.Sale{SaleID: "s-1", Date: day, Status: domain.SalePaid}); err != nil {
			return err
		}
		if err := repos.BudgetRepo.SaveBudgetSettings(ctx, domain.BudgetSettings{FixedCostRent: decimal.NewFromInt(100)}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	repos := s.Repositories()
	p, err := repos.ProductRepo.FindProductByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	_, err = repos.SaleRepo.FindSaleByID(ctx, "s-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	settings, err := repos.BudgetRepo.GetBudgetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.FixedCostRent.IsZero())
}

func TestWithinTransaction_Commits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p-1", "Água", 5)

	err := s.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		_, err := repos.ProductRepo.AdjustStock(ctx, "p-1", -2, "tester", day)
		return err
	})
	require.NoError(t, err)

	p, err := s.Repositories().ProductRepo.FindProductByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestListSales_NewestFirstAndFiltered(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Repositories().SaleRepo
	ana := "person-ana"
	items := []domain.SaleItem{{ProductID: "p-1", Quantity: 1}}

	require.NoError(t, repo.SaveSale(ctx, domain.Sale{SaleID: "a", Date: day.Add(-2 * time.Hour), Status: domain.SalePaid, Items: items}))
	require.NoError(t, repo.SaveSale(ctx, domain.Sale{SaleID: "b", Date: day, Status: domain.SalePending, PersonID: &ana, Items: items}))
	require.NoError(t, repo.SaveSale(ctx, domain.Sale{SaleID: "c", Date: day.Add(-26 * time.Hour), Status: domain.SalePaid}))

	all, err := repo.ListSales(ctx, domain.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{all[0].SaleID, all[1].SaleID, all[2].SaleID})

	pending := domain.SalePending
	tab, err := repo.ListSales(ctx, domain.SaleFilter{Status: &pending, PersonID: &ana})
	require.NoError(t, err)
	require.Len(t, tab, 1)
	assert.Equal(t, "b", tab[0].SaleID)

	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	today, err := repo.ListSales(ctx, domain.SaleFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, today, 2)

	has, err := repo.HasPendingSaleForProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = repo.HasPendingSaleForProduct(ctx, "p-2")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStoredItemsAreDetached(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Repositories().SaleRepo
	items := []domain.SaleItem{{ProductID: "p-1", Quantity: 1}}
	require.NoError(t, repo.SaveSale(ctx, domain.Sale{SaleID: "a", Date: day, Items: items}))

	items[0].Quantity = 50
	sale, err := repo.FindSaleByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, sale.Items[0].Quantity)

	sale.Items[0].Quantity = 70
	again, err := repo.FindSaleByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}
