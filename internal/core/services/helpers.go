package services

import (
	"fmt"
	"sort"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

func ptr[T any](v T) *T {
	return &v
}

func productLockKeys(productIDs ...string) []string {
	seen := make(map[string]struct{}, len(productIDs))
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, portsrepo.ProductLockPrefix+id)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func personLockKey(personID string) string {
	return portsrepo.PersonLockPrefix + personID
}

func projectionLockKey(projectionID string) string {
	return portsrepo.ProjectionLockPrefix + projectionID
}

// parseSettlementMethod accepts any known method except Pendência, which would leave the debt open.
func parseSettlementMethod(raw string) (domain.PaymentMethod, error) {
	method := domain.PaymentMethod(raw)
	if !method.IsValid() {
		return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, raw)
	}
	if method == domain.PaymentOnAccount {
		return "", fmt.Errorf("%w: debt cannot be settled with %q", apperrors.ErrValidation, raw)
	}
	return method, nil
}

func parseCategory(raw string) (domain.TransactionCategory, error) {
	category := domain.TransactionCategory(raw)
	if !category.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, raw)
	}
	return category, nil
}
