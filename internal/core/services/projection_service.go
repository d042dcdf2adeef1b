package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// projectionService keeps the expense budget and books executed lines.
type projectionService struct {
	BaseService
	store portsrepo.Store
}

// NewProjectionService creates a new projection service.
func NewProjectionService(store portsrepo.Store, opts ...ServiceOption) portssvc.ProjectionSvcFacade {
	return &projectionService{
		BaseService: newBaseService(opts...),
		store:       store,
	}
}

var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

func parseCategoryMapping(raw *string) (*domain.TransactionCategory, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	category, err := parseCategory(*raw)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *projectionService) CreateProjection(ctx context.Context, req dto.CreateProjectionRequest, userID string) (*domain.ProjectionItem, error) {
	mapping, err := parseCategoryMapping(req.CategoryMapping)
	if err != nil {
		return nil, err
	}

	projection := domain.ProjectionItem{
		ProjectionID:    uuid.NewString(),
		Label:           strings.TrimSpace(req.Label),
		Amount:          req.Amount,
		CategoryMapping: mapping,
		Source:          domain.SourceBase,
		AuditFields:     domain.NewAuditFields(userID, s.Now()),
	}
	if err := projection.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Repositories().ProjectionRepo.SaveProjection(ctx, projection); err != nil {
		s.LogError(ctx, err, "Failed to save projection", slog.String("label", projection.Label))
		return nil, fmt.Errorf("failed to save projection: %w", err)
	}

	s.LogInfo(ctx, "Projection created", slog.String("projection_id", projection.ProjectionID))
	return &projection, nil
}

func (s *projectionService) GetProjection(ctx context.Context, projectionID string) (*domain.ProjectionItem, error) {
	projection, err := s.store.Repositories().ProjectionRepo.FindProjectionByID(ctx, projectionID)
	if err != nil {
		return nil, fmt.Errorf("projection %s: %w", projectionID, err)
	}
	return projection, nil
}

func (s *projectionService) ListProjections(ctx context.Context) ([]domain.ProjectionItem, error) {
	projections, err := s.store.Repositories().ProjectionRepo.ListProjections(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projections")
		return nil, fmt.Errorf("failed to list projections: %w", err)
	}
	return projections, nil
}

func (s *projectionService) UpdateProjection(ctx context.Context, projectionID string, req dto.UpdateProjectionRequest, userID string) (*domain.ProjectionItem, error) {
	unlock, err := s.Lock(ctx, projectionLockKey(projectionID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var updated domain.ProjectionItem
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		projection, err := repos.ProjectionRepo.FindProjectionByID(ctx, projectionID)
		if err != nil {
			return fmt.Errorf("projection %s: %w", projectionID, err)
		}
		if projection.IsExecuted {
			return fmt.Errorf("%w: projection %s is executed, undo it first", apperrors.ErrConflict, projectionID)
		}

		if req.Label != nil {
			projection.Label = strings.TrimSpace(*req.Label)
		}
		if req.Amount != nil {
			projection.Amount = *req.Amount
		}
		if req.CategoryMapping != nil {
			if projection.CategoryMapping, err = parseCategoryMapping(req.CategoryMapping); err != nil {
				return err
			}
		}
		if err := projection.Validate(); err != nil {
			return err
		}
		projection.Touch(userID, s.Now())

		if err := repos.ProjectionRepo.UpdateProjection(ctx, *projection); err != nil {
			return fmt.Errorf("failed to update projection: %w", err)
		}
		updated = *projection
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Projection updated", slog.String("projection_id", projectionID))
	return &updated, nil
}

func (s *projectionService) DeleteProjection(ctx context.Context, projectionID string, userID string) error {
	unlock, err := s.Lock(ctx, projectionLockKey(projectionID))
	if err != nil {
		return err
	}
	defer unlock()

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		projection, err := repos.ProjectionRepo.FindProjectionByID(ctx, projectionID)
		if err != nil {
			return fmt.Errorf("projection %s: %w", projectionID, err)
		}
		if projection.IsExecuted {
			return fmt.Errorf("%w: projection %s is executed, undo it first", apperrors.ErrConflict, projectionID)
		}
		return repos.ProjectionRepo.DeleteProjection(ctx, projectionID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete projection", slog.String("projection_id", projectionID))
		return err
	}

	s.LogInfo(ctx, "Projection deleted", slog.String("projection_id", projectionID), slog.String("user_id", userID))
	return nil
}

func (s *projectionService) GetBudgetSettings(ctx context.Context) (domain.BudgetSettings, error) {
	settings, err := s.store.Repositories().BudgetRepo.GetBudgetSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load budget settings")
		return domain.BudgetSettings{}, fmt.Errorf("failed to load budget settings: %w", err)
	}
	return settings, nil
}

func (s *projectionService) UpdateFixedCostRent(ctx context.Context, amount decimal.Decimal, userID string) (domain.BudgetSettings, error) {
	if err := domain.ValidateAmount("rent", amount); err != nil {
		return domain.BudgetSettings{}, err
	}

	unlock, err := s.Lock(ctx, portsrepo.BudgetLockKey)
	if err != nil {
		return domain.BudgetSettings{}, err
	}
	defer unlock()

	settings := domain.BudgetSettings{
		FixedCostRent: amount,
		LastUpdatedAt: s.Now(),
		LastUpdatedBy: userID,
	}
	if err := s.store.Repositories().BudgetRepo.SaveBudgetSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save budget settings")
		return domain.BudgetSettings{}, fmt.Errorf("failed to save budget settings: %w", err)
	}

	s.LogInfo(ctx, "Fixed rent updated", slog.String("fixed_cost_rent", amount.String()))
	return settings, nil
}

// executionCategory picks the category of an execution: the reviewed one, the mapping, then OUTROS.
func executionCategory(req dto.ExecuteProjectionRequest, projection domain.ProjectionItem) (domain.TransactionCategory, error) {
	if req.Category != nil && *req.Category != "" {
		return parseCategory(*req.Category)
	}
	if projection.CategoryMapping != nil {
		return *projection.CategoryMapping, nil
	}
	return domain.CategoryOutros, nil
}

func (s *projectionService) ReviewAndExecute(ctx context.Context, projectionID string, req dto.ExecuteProjectionRequest, userID string) (*domain.ProjectionItem, error) {
	if err := domain.ValidateAmount("amount", req.Amount); err != nil {
		return nil, err
	}
	var method *string
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		m, err := parseSettlementMethod(*req.PaymentMethod)
		if err != nil {
			return nil, err
		}
		method = ptr(string(m))
	}

	unlock, err := s.Lock(ctx, portsrepo.BudgetLockKey, projectionLockKey(projectionID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var executed domain.ProjectionItem
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		projection, err := repos.ProjectionRepo.FindProjectionByID(ctx, projectionID)
		if err != nil {
			return fmt.Errorf("projection %s: %w", projectionID, err)
		}
		if projection.IsExecuted {
			return fmt.Errorf("%w: projection %s is already executed", apperrors.ErrConflict, projectionID)
		}
		category, err := executionCategory(req, *projection)
		if err != nil {
			return err
		}

		switch strategy := domain.StrategyFor(category).(type) {
		case domain.FixedCostUpdate:
			settings, err := repos.BudgetRepo.GetBudgetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to load budget settings: %w", err)
			}
			previous := settings.FixedCostRent
			settings.FixedCostRent = req.Amount
			settings.LastUpdatedAt = now
			settings.LastUpdatedBy = userID
			if err := repos.BudgetRepo.SaveBudgetSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to save budget settings: %w", err)
			}
			projection.PreviousRentValue = &previous

		case domain.LedgerTransaction:
			description := strings.TrimSpace(req.Description)
			if description == "" {
				description = projection.Label
			}
			date := now
			if req.Date != nil {
				date = *req.Date
			}
			txn := domain.Transaction{
				TransactionID: uuid.NewString(),
				Description:   description,
				Amount:        req.Amount,
				Type:          domain.Saida,
				Category:      strategy.Category,
				Date:          date,
				PaymentMethod: method,
				ReferenceID:   ptr(projection.ProjectionID),
				IsSettled:     true,
				AuditFields:   domain.NewAuditFields(userID, now),
			}
			if err := txn.Validate(); err != nil {
				return err
			}
			if err := repos.TransactionRepo.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save execution transaction: %w", err)
			}
			projection.ExecutedTransactionID = ptr(txn.TransactionID)
		}

		projection.Amount = req.Amount
		projection.IsExecuted = true
		projection.ExecutedAt = ptr(now)
		projection.Touch(userID, now)
		if err := repos.ProjectionRepo.UpdateProjection(ctx, *projection); err != nil {
			return fmt.Errorf("failed to update projection: %w", err)
		}
		executed = *projection
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to execute projection", slog.String("projection_id", projectionID))
		return nil, err
	}

	s.LogInfo(ctx, "Projection executed",
		slog.String("projection_id", projectionID),
		slog.String("amount", executed.Amount.String()),
		slog.Bool("rent", executed.IsRentExecution()))
	return &executed, nil
}

func (s *projectionService) UndoExecution(ctx context.Context, projectionID string, userID string) (*domain.ProjectionItem, error) {
	keys := []string{portsrepo.BudgetLockKey, projectionLockKey(projectionID)}
	movementProducts, err := s.movementProducts(ctx, projectionID)
	if err != nil {
		return nil, err
	}
	keys = append(keys, productLockKeys(movementProducts...)...)

	unlock, err := s.Lock(ctx, keys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var result *domain.ProjectionItem
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		projection, err := repos.ProjectionRepo.FindProjectionByID(ctx, projectionID)
		if err != nil {
			return fmt.Errorf("projection %s: %w", projectionID, err)
		}
		if !projection.IsExecuted && projection.Source == domain.SourceBase {
			result = projection
			return nil
		}

		switch {
		case projection.IsRentExecution():
			settings, err := repos.BudgetRepo.GetBudgetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to load budget settings: %w", err)
			}
			settings.FixedCostRent = *projection.PreviousRentValue
			settings.LastUpdatedAt = now
			settings.LastUpdatedBy = userID
			if err := repos.BudgetRepo.SaveBudgetSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to restore rent: %w", err)
			}

		case projection.ExecutedTransactionID != nil:
			if err := s.reverseExecutionTransaction(ctx, repos, *projection, userID); err != nil {
				return err
			}
		}

		if projection.Source != domain.SourceBase {
			return repos.ProjectionRepo.DeleteProjection(ctx, projectionID)
		}

		projection.ResetToPlanned()
		projection.Touch(userID, now)
		if err := repos.ProjectionRepo.UpdateProjection(ctx, *projection); err != nil {
			return fmt.Errorf("failed to update projection: %w", err)
		}
		result = projection
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to undo projection execution", slog.String("projection_id", projectionID))
		return nil, err
	}

	s.LogInfo(ctx, "Projection execution undone", slog.String("projection_id", projectionID), slog.Bool("deleted", result == nil))
	return result, nil
}

// movementProducts lists the products whose stock an undo of a MOVEMENT row puts back.
func (s *projectionService) movementProducts(ctx context.Context, projectionID string) ([]string, error) {
	repos := s.store.Repositories()
	projection, err := repos.ProjectionRepo.FindProjectionByID(ctx, projectionID)
	if err != nil {
		return nil, fmt.Errorf("projection %s: %w", projectionID, err)
	}
	if projection.Source != domain.SourceMovement || projection.ExecutedTransactionID == nil {
		return nil, nil
	}
	txn, err := repos.TransactionRepo.FindTransactionByID(ctx, *projection.ExecutedTransactionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load execution transaction: %w", err)
	}
	ids := make([]string, 0, len(txn.Items))
	for _, item := range txn.Items {
		ids = append(ids, item.ProductID)
	}
	return ids, nil
}

// reverseExecutionTransaction deletes the ledger row of an execution. A row already
// removed by hand is tolerated. Undoing a replenishment also takes its units back out of stock.
func (s *projectionService) reverseExecutionTransaction(ctx context.Context, repos portsrepo.RepositoryProvider, projection domain.ProjectionItem, userID string) error {
	txnID := *projection.ExecutedTransactionID
	txn, err := repos.TransactionRepo.FindTransactionByID(ctx, txnID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogInfo(ctx, "Execution transaction already gone", slog.String("transaction_id", txnID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load execution transaction: %w", err)
	}

	if projection.Source == domain.SourceMovement {
		now := s.Now()
		for _, item := range txn.Items {
			if _, err := repos.ProductRepo.AdjustStock(ctx, item.ProductID, -item.Quantity, userID, now); err != nil {
				return fmt.Errorf("replenished units of %s were already sold: %w", item.ProductName, err)
			}
		}
	}

	if err := repos.TransactionRepo.DeleteTransaction(ctx, txnID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete execution transaction: %w", err)
	}
	return nil
}

func (s *projectionService) RegisterCurrentStockCost(ctx context.Context, userID string) (*domain.ProjectionItem, error) {
	now := s.Now()
	var projection domain.ProjectionItem
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		products, err := repos.ProductRepo.ListProducts(ctx, false)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		items, total := stockValueItems(products)
		if len(items) == 0 {
			return fmt.Errorf("%w: there is no stock on hand to register", apperrors.ErrValidation)
		}

		projectionID := uuid.NewString()
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			Description:   "Custo do estoque atual",
			Amount:        total,
			Type:          domain.Saida,
			Category:      domain.CategoryCantina,
			Date:          now,
			ReferenceID:   ptr(projectionID),
			IsSettled:     true,
			Items:         items,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if err := repos.TransactionRepo.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save stock cost transaction: %w", err)
		}

		projection = domain.ProjectionItem{
			ProjectionID:          projectionID,
			Label:                 fmt.Sprintf("Estoque atual (%s)", now.Format("02/01/2006")),
			Amount:                total,
			CategoryMapping:       ptr(domain.CategoryCantina),
			IsExecuted:            true,
			ExecutedTransactionID: ptr(txn.TransactionID),
			ExecutedAt:            ptr(now),
			Source:                domain.SourceStock,
			AuditFields:           domain.NewAuditFields(userID, now),
		}
		if err := repos.ProjectionRepo.SaveProjection(ctx, projection); err != nil {
			return fmt.Errorf("failed to save stock projection: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register stock cost")
		return nil, err
	}

	s.LogInfo(ctx, "Stock cost registered",
		slog.String("projection_id", projection.ProjectionID),
		slog.String("amount", projection.Amount.String()))
	return &projection, nil
}
