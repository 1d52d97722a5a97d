/*
Package eventkit provides a generic, thread-safe, priority-ordered event
dispatcher.

# Overview

eventkit routes application events to handler callbacks grouped by category.
Handlers are invoked synchronously, on the dispatching goroutine, in
descending priority order. The category type is a generic parameter, so an
application keys its dispatcher by whatever enumeration it already has:

  - Type-safe handler adapters for zero to three typed arguments
  - Deterministic ordering: priority first, registration order among ties
  - Safe concurrent registration, removal, and dispatch
  - OpenTelemetry integration and dispatch journaling, both opt-in

# Basic Usage

Create a dispatcher keyed by your category type, register handlers, then
dispatch:

	type Event int

	const (
	    UserCreated Event = iota
	    UserDeleted
	)

	func main() {
	    d := eventkit.New[Event]()

	    id := d.Register(UserCreated, eventkit.On1(func(ctx context.Context, name string) error {
	        fmt.Println("welcome,", name)
	        return nil
	    }))

	    if err := d.Dispatch(context.Background(), UserCreated, "ada"); err != nil {
	        log.Fatal(err)
	    }

	    d.Unregister(UserCreated, id)
	}

Dispatching a category nobody listens to is a no-op. Unregistering an
unknown id is a no-op too.

# Priorities

Handlers run in descending priority order. Equal priorities run in the
order they were registered. The default priority is 0.

	d.Register(UserCreated, audit, eventkit.WithPriority(100)) // runs first
	d.Register(UserCreated, index, eventkit.WithPriority(10))
	d.Register(UserCreated, email)                             // priority 0, runs last

# Typed Handlers

The On0 through On3 adapters bind a handler to concrete argument types.
At dispatch time each argument must have exactly the registered dynamic
type; otherwise the handler is skipped and the mismatch is reported in the
returned error:

	d.Register(OrderPlaced, eventkit.On2(func(ctx context.Context, id string, total float64) error {
	    return charge(ctx, id, total)
	}))

	err := d.Dispatch(ctx, OrderPlaced, "ord-1", 99.95) // invoked
	err = d.Dispatch(ctx, OrderPlaced, "ord-1", 99)     // skipped: int is not float64

OnAny accepts any argument list for handlers that inspect arguments
themselves.

# Error Handling

Dispatch aggregates errors with errors.Join. Mismatched handlers are
skipped and the pass continues; a handler that returns an error ends the
pass immediately:

	err := d.Dispatch(ctx, OrderPlaced, "ord-1", 99.95)

	if errors.Is(err, eventkit.ErrSignatureMismatch) {
	    // at least one handler was skipped
	}

	var handlerErr *eventkit.HandlerError
	if errors.As(err, &handlerErr) {
	    log.Printf("handler %d failed: %v", handlerErr.HandlerID, handlerErr.Err)
	}

Panics in handlers unwind through Dispatch unless RecoveryMiddleware is
installed, which converts them to *PanicError with a stack trace.

# Middleware

Middleware wraps every handler invocation. Chains are applied at
registration time, first middleware outermost:

	d := eventkit.New[Event](
	    eventkit.WithMiddleware(
	        eventkit.RecoveryMiddleware(),
	        eventkit.LoggingMiddleware(logger),
	        eventkit.SlowHandlerMiddleware(logger, 100*time.Millisecond),
	    ),
	)

# Observability

Enable logging, metrics, and tracing:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	d := eventkit.New[Event](
	    eventkit.WithLogger(logger),
	    eventkit.WithMetrics(observability.NewMetricsRecorder()),
	    eventkit.WithTracing(observability.NewSpanManager()),
	)

Logs include structured fields: category, handlers, duration_ms.
OpenTelemetry metrics: eventkit.dispatch.count, eventkit.dispatch.latency_ms, etc.
OpenTelemetry tracing: one eventkit.dispatch.{category} span per pass.

# Journal

Record every dispatch pass for later inspection:

	store, err := journal.NewSQLiteStore("./dispatches.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	d := eventkit.New[Event](eventkit.WithJournal(store))

Journal writes are best-effort: a failing store never fails a dispatch.

# Thread Safety

  - Dispatcher[E] IS safe for concurrent use; a single read-favoring lock
    guards all categories
  - Handlers run outside the lock, so a handler may Register and
    Unregister freely, including on its own category
  - A dispatch pass runs against a snapshot: registrations made during the
    pass take effect on the next dispatch
  - Store implementations in journal are safe for concurrent use

# Subpackages

  - config: Map-backed configuration with YAML/JSON loading
  - journal: Dispatch journal storage (memory, SQLite)
  - observability: Logging, metrics, and tracing helpers
*/
package eventkit
