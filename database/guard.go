package database

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"museworks_backend/internal/logger"
	"museworks_backend/internal/metrics"
	"museworks_backend/pkg/apperrors"
)

// GuardSettings - настройки защиты операций с хранилищем
type GuardSettings struct {
	Name             string
	QueryTimeout     time.Duration // таймаут одной операции
	MaxRequests      uint32        // запросов в half-open состоянии
	Interval         time.Duration // окно сброса счетчиков в closed состоянии
	Timeout          time.Duration // время в open состоянии до half-open
	FailureThreshold uint32        // подряд идущих сбоев до открытия
}

// Guard выполняет операции с хранилищем под таймаутом и circuit breaker.
// Таймауты, отказ breaker'а и ошибки драйвера превращаются в StorageUnavailable,
// доменные ошибки (*apperrors.AppError с кодом < 500) проходят как есть и не считаются сбоем.
type Guard struct {
	name    string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[struct{}]
}

func NewGuard(s GuardSettings) *Guard {
	if s.Name == "" {
		s.Name = "storage"
	}
	if s.QueryTimeout <= 0 {
		s.QueryTimeout = 3 * time.Second
	}
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	threshold := s.FailureThreshold

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("storage circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isDomainError(err)
		},
	})

	return &Guard{name: s.Name, timeout: s.QueryTimeout, cb: cb}
}

// Do выполняет fn с контекстом, ограниченным таймаутом операции.
func (g *Guard) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return g.fail(ctx, operation, "canceled", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	_, err := g.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn(opCtx)
	})
	duration := time.Since(start)
	metrics.RecordStorageOperation(operation, duration)

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
		logger.DBLog(operation, duration, nil)
		return nil
	case isDomainError(err):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
		return g.fail(ctx, operation, "breaker_open", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(opCtx.Err(), context.DeadlineExceeded):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		return g.fail(ctx, operation, "timeout", err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		return g.fail(ctx, operation, "driver", err)
	}
}

// Query - типизированная обертка над Do для операций чтения.
func Query[T any](ctx context.Context, g *Guard, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := g.Do(ctx, operation, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// State возвращает текущее состояние breaker'а (для /health)
func (g *Guard) State() string {
	return g.cb.State().String()
}

func (g *Guard) fail(ctx context.Context, operation, errorType string, err error) error {
	metrics.StorageErrors.WithLabelValues(operation, errorType).Inc()
	logger.CtxWithError(ctx, "storage operation failed", err,
		"operation", operation,
		"error_type", errorType,
	)
	return apperrors.StorageUnavailable(err)
}

func isDomainError(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.HTTPCode < 500
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
