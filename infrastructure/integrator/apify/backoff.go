package apify

import (
	"context"
	"time"
)

// Sleeper espera d ou retorna antes se o contexto for cancelado
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep é o Sleeper de produção
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryDelay devolve a espera antes da tentativa attempt+1: base * attempt
func RetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return base * time.Duration(attempt)
}
