package testutil

import (
	"context"
	"testing"
	"time"
)

// ContainerTimeout ограничивает тесты, которые поднимают PostgreSQL.
const ContainerTimeout = 2 * time.Minute

// Context возвращает context, который отменяется по timeout или при завершении теста.
func Context(tb testing.TB, timeout time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	tb.Cleanup(cancel)

	return ctx
}
