package repositories

import "context"

// Locker serializes mutations of one aggregate (a product's stock, a person's tab, a projection).
type Locker interface {
	// Lock blocks until every key is held and returns a function releasing them.
	// Keys are acquired in sorted order.
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

// Lock keys.
const (
	ProductLockPrefix    = "product:"
	PersonLockPrefix     = "person:"
	ProjectionLockPrefix = "projection:"
	BudgetLockKey        = "budget:settings"
)
