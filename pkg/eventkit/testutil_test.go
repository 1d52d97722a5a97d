package eventkit

import (
	"context"
)

// testEvent is the category enumeration used across tests.
type testEvent int

const (
	orderPlaced testEvent = iota
	orderShipped
	inventoryLow
)

// testCtx returns the context used by tests.
func testCtx() context.Context {
	return context.Background()
}

// Helper handler constructors

// makeTrackingHandler creates a handler that records its execution.
func makeTrackingHandler(name string, tracker *[]string) Handler {
	return On0(func(ctx context.Context) error {
		*tracker = append(*tracker, name)
		return nil
	})
}

// makeFailingHandler creates a handler that returns the given error.
func makeFailingHandler(err error) Handler {
	return On0(func(ctx context.Context) error {
		return err
	})
}

// makePanicHandler creates a handler that panics with the given value.
func makePanicHandler(value any) Handler {
	return On0(func(ctx context.Context) error {
		panic(value)
	})
}
