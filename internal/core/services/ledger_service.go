package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/pagination"
)

const defaultTimelineLimit = 50

type ledgerService struct {
	BaseService
	store portsrepo.Store
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store portsrepo.Store, opts ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(opts...),
		store:       store,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func parseTransactionType(raw string) (domain.TransactionType, error) {
	t := domain.TransactionType(strings.ToUpper(raw))
	if t != domain.Entrada && t != domain.Saida {
		return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, raw)
	}
	return t, nil
}

func rejectVirtual(transactionID string) error {
	if domain.IsVirtualID(transactionID) {
		return fmt.Errorf("%w: %s is derived from registration payments and cannot be changed here", apperrors.ErrValidation, transactionID)
	}
	return nil
}

func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	txnType, err := parseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		Type:          txnType,
		Category:      category,
		Date:          now,
		PaymentMethod: req.PaymentMethod,
		ReferenceID:   req.ReferenceID,
		PersonID:      req.PersonID,
		PersonName:    req.PersonName,
		IsSettled:     true,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.IsSettled != nil {
		txn.IsSettled = *req.IsSettled
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Repositories().TransactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("description", txn.Description))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.store.Repositories().TransactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.store.Repositories().TransactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := rejectVirtual(transactionID); err != nil {
		return nil, err
	}

	var updated domain.Transaction
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		txn, err := repos.TransactionRepo.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("transaction %s: %w", transactionID, err)
		}

		if req.Description != nil {
			txn.Description = strings.TrimSpace(*req.Description)
		}
		if req.Amount != nil {
			txn.Amount = *req.Amount
		}
		if req.Type != nil {
			if txn.Type, err = parseTransactionType(*req.Type); err != nil {
				return err
			}
		}
		if req.Category != nil {
			if txn.Category, err = parseCategory(*req.Category); err != nil {
				return err
			}
		}
		if req.Date != nil {
			txn.Date = *req.Date
		}
		if req.PaymentMethod != nil {
			txn.PaymentMethod = req.PaymentMethod
		}
		if req.IsSettled != nil {
			txn.IsSettled = *req.IsSettled
		}
		if err := txn.Validate(); err != nil {
			return err
		}
		txn.Touch(userID, s.Now())

		if err := repos.TransactionRepo.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		updated = *txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	if err := rejectVirtual(transactionID); err != nil {
		return err
	}
	if err := s.store.Repositories().TransactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID), slog.String("user_id", userID))
	return nil
}

func (s *ledgerService) ListTimeline(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := domain.TransactionFilter{From: params.From, To: params.To}
	if params.Type != nil && *params.Type != "" {
		t, err := parseTransactionType(*params.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}
	if params.Category != nil && *params.Category != "" {
		c, err := parseCategory(*params.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &c
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTimelineLimit
	}

	repos := s.store.Repositories()
	rows, err := repos.TransactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for timeline")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if params.IncludeVirtual {
		people, err := repos.PersonRepo.ListPeople(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list people for timeline")
			return nil, fmt.Errorf("failed to list people: %w", err)
		}
		for _, v := range registrationRows(people) {
			if filter.Matches(v) {
				rows = append(rows, v)
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].TransactionID < rows[j].TransactionID
	})

	if params.NextToken != nil && *params.NextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		start := len(rows)
		for i, row := range rows {
			if pagination.After(row.Date, row.TransactionID, cursorDate, cursorID) {
				start = i
				break
			}
		}
		rows = rows[start:]
	}

	resp := &dto.ListTransactionsResponse{}
	if len(rows) > limit {
		last := rows[limit-1]
		rows = rows[:limit]
		resp.NextToken = ptr(pagination.EncodeToken(last.Date, last.TransactionID))
	}
	resp.Transactions = dto.ToTransactionResponses(rows)

	s.LogDebug(ctx, "Timeline page built", slog.Int("count", len(rows)), slog.Bool("has_more", resp.NextToken != nil))
	return resp, nil
}

// registrationRows synthesizes one ENTRADA/INSCRICAO row per person who has paid anything.
func registrationRows(people []domain.Person) []domain.Transaction {
	rows := make([]domain.Transaction, 0, len(people))
	for _, p := range people {
		if !p.AmountPaid.IsPositive() {
			continue
		}
		date := p.CreatedAt
		if p.LastPaymentDate != nil {
			date = *p.LastPaymentDate
		}
		rows = append(rows, domain.Transaction{
			TransactionID: domain.VirtualIDPrefix + p.PersonID,
			Description:   fmt.Sprintf("Inscrição - %s", p.Name),
			Amount:        p.AmountPaid,
			Type:          domain.Entrada,
			Category:      domain.CategoryInscricao,
			Date:          date,
			PersonID:      ptr(p.PersonID),
			PersonName:    ptr(p.Name),
			IsSettled:     true,
			IsVirtual:     true,
		})
	}
	return rows
}
