package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Locker portsrepo.Locker
	Clock  func() time.Time
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithLocker serializes aggregate mutations through l.
func WithLocker(l portsrepo.Locker) ServiceOption {
	return func(b *BaseService) {
		b.Locker = l
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(opts ...ServiceOption) BaseService {
	b := BaseService{Clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Lock acquires the aggregate locks for keys. Without a Locker it is a no-op.
func (s *BaseService) Lock(ctx context.Context, keys ...string) (func(), error) {
	if s.Locker == nil || len(keys) == 0 {
		return func() {}, nil
	}
	unlock, err := s.Locker.Lock(ctx, keys...)
	if err != nil {
		s.LogError(ctx, err, "Failed to acquire aggregate lock", slog.Any("keys", keys))
		return nil, err
	}
	return unlock, nil
}
