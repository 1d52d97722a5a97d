package eventkit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/eventkit/pkg/eventkit/journal"
	"github.com/randalmurphal/eventkit/pkg/eventkit/observability"
)

// HandlerID identifies a registration. Ids are monotonically increasing,
// unique for the lifetime of the process, and never reused. The zero value
// is never issued and can be used as an "invalid" sentinel by callers.
type HandlerID uint64

// registration pairs a handler with its dispatch metadata.
// Immutable once inserted into a category list.
type registration struct {
	id       HandlerID
	priority int
	handler  Handler
	call     InvokeFunc // middleware-wrapped invocation; nil when no middleware
}

// Dispatcher routes dispatched events to handlers registered per category,
// invoking them synchronously in descending priority order (registration
// order among equal priorities).
//
// The category type E is chosen by the embedding application, typically a
// small closed enumeration of ints or strings. All methods are safe for
// concurrent use; one read-favoring lock guards the registrations of all
// categories, so concurrent Dispatch calls proceed in parallel and only
// structural changes take exclusive access.
type Dispatcher[E comparable] struct {
	settings settings

	mu       sync.RWMutex
	handlers map[E][]registration

	nextID atomic.Uint64
	stats  statsCounters
}

// New creates an empty dispatcher.
//
// Example:
//
//	d := eventkit.New[string]()
//	id := d.Register("user.created", eventkit.On1(func(ctx context.Context, u User) error {
//	    return store.Index(ctx, u)
//	}), eventkit.WithPriority(10))
//
//	err := d.Dispatch(ctx, "user.created", user)
func New[E comparable](opts ...Option) *Dispatcher[E] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Dispatcher[E]{
		settings: s,
		handlers: make(map[E][]registration),
	}
}

// Register adds a handler to a category and returns its id. Higher
// priorities dispatch first; among equal priorities, handlers dispatch in
// the order they were registered. Register never blocks in-flight handler
// execution, only the structural insert takes the write lock.
//
// A nil handler panics with ErrNilHandler.
func (d *Dispatcher[E]) Register(category E, h Handler, opts ...RegisterOption) HandlerID {
	if h == nil {
		panic(ErrNilHandler)
	}

	reg := registration{
		id:      HandlerID(d.nextID.Add(1)),
		handler: h,
	}
	for _, opt := range opts {
		opt(&reg)
	}

	if len(d.settings.middleware) > 0 {
		base := func(ctx context.Context, inv *Invocation) error {
			return h.invoke(ctx, inv.Args)
		}
		reg.call = chainMiddleware(base, d.settings.middleware)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.handlers[category]

	// Insertion point: first entry with strictly lower priority, so the
	// new handler lands after all entries with priority >= its own.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].priority < reg.priority
	})

	// Build a fresh slice instead of inserting in place. Published lists
	// are never mutated, so Dispatch snapshots stay consistent without
	// holding the lock during handler calls.
	next := make([]registration, 0, len(list)+1)
	next = append(next, list[:i]...)
	next = append(next, reg)
	next = append(next, list[i:]...)
	d.handlers[category] = next

	return reg.id
}

// Unregister removes the registration with the given id from a category.
// It is an idempotent no-op when the category has no handlers or the id is
// not among them. A dispatch pass already in flight on another goroutine
// may still invoke the handler once from its snapshot; no future pass will.
func (d *Dispatcher[E]) Unregister(category E, id HandlerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.handlers[category]
	for i, reg := range list {
		if reg.id != id {
			continue
		}
		if len(list) == 1 {
			delete(d.handlers, category)
			return
		}
		next := make([]registration, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		d.handlers[category] = next
		return
	}
}

// Dispatch synchronously invokes every handler registered for category, in
// descending priority order, passing args to each. All handlers run on the
// calling goroutine before Dispatch returns. A category with no handlers is
// a no-op returning nil.
//
// Handlers whose registered argument types do not match args are skipped
// and reported: the returned error matches ErrSignatureMismatch and carries
// one *SignatureError per skipped handler. A handler that returns an error
// ends the pass immediately; remaining lower-priority handlers do not run
// and the error is returned wrapped in *HandlerError, joined with any
// mismatch errors collected earlier in the pass.
//
// The context is passed through to handlers and instrumentation; Dispatch
// itself never blocks on it and does not check it between handlers.
func (d *Dispatcher[E]) Dispatch(ctx context.Context, category E, args ...any) error {
	if ctx == nil {
		return ErrNilContext
	}

	d.stats.dispatches.Add(1)

	// Snapshot the category list. Mutators publish fresh slices, so the
	// snapshot stays internally consistent for the whole pass.
	d.mu.RLock()
	snapshot := d.handlers[category]
	d.mu.RUnlock()

	if len(snapshot) == 0 {
		return nil
	}

	observed := d.settings.logger != nil || d.settings.metrics != nil ||
		d.settings.spans != nil || d.settings.journal != nil

	var label string
	if observed {
		label = categoryLabel(category)
	}

	var span trace.Span
	if d.settings.spans != nil {
		ctx, span = d.settings.spans.StartDispatchSpan(ctx, label)
	}
	observability.LogDispatchStart(d.settings.logger, label, len(snapshot))

	start := time.Now()
	var errs []error
	invoked := 0
	mismatched := 0

	for _, reg := range snapshot {
		var invStart time.Time
		if d.settings.metrics != nil {
			invStart = time.Now()
		}

		err := d.invokeHandler(ctx, category, reg, args)
		if err == nil {
			invoked++
			if d.settings.metrics != nil {
				d.settings.metrics.RecordInvocation(ctx, label, time.Since(invStart), nil)
			}
			continue
		}

		// A fresh SignatureError can only come from this registration's
		// adapter: the handler was skipped, the pass goes on.
		if serr, ok := err.(*SignatureError); ok && serr.HandlerID == 0 {
			serr.Category = category
			serr.HandlerID = reg.id
			mismatched++
			observability.LogSignatureMismatch(d.settings.logger, label, uint64(reg.id), serr.Want, serr.Got)
			if d.settings.spans != nil {
				d.settings.spans.AddSpanEvent(ctx, "handler_skipped",
					attribute.String("want", serr.Want),
					attribute.Int64("handler_id", int64(reg.id)),
				)
			}
			errs = append(errs, serr)
			continue
		}

		// Handler failure ends the pass; lower-priority handlers do not run.
		invoked++
		if d.settings.metrics != nil {
			d.settings.metrics.RecordInvocation(ctx, label, time.Since(invStart), err)
		}
		d.stats.failures.Add(1)
		errs = append(errs, &HandlerError{
			Category:  category,
			HandlerID: reg.id,
			Priority:  reg.priority,
			Err:       err,
		})
		break
	}

	if invoked > 0 {
		d.stats.invocations.Add(uint64(invoked))
	}
	if mismatched > 0 {
		d.stats.mismatches.Add(uint64(mismatched))
	}

	err := errors.Join(errs...)
	elapsed := time.Since(start)

	if d.settings.metrics != nil {
		d.settings.metrics.RecordDispatch(ctx, label, invoked, elapsed, err)
	}
	if d.settings.spans != nil {
		d.settings.spans.EndSpanWithError(span, err)
	}
	if d.settings.journal != nil {
		d.appendRecord(ctx, label, invoked, mismatched, err, start, elapsed)
	}
	if err != nil {
		observability.LogDispatchError(d.settings.logger, label, err, float64(elapsed.Milliseconds()))
	} else {
		observability.LogDispatchComplete(d.settings.logger, label, invoked, float64(elapsed.Milliseconds()))
	}

	return err
}

// invokeHandler runs one handler, through the middleware chain when one is
// installed.
func (d *Dispatcher[E]) invokeHandler(ctx context.Context, category E, reg registration, args []any) error {
	if reg.call == nil {
		return reg.handler.invoke(ctx, args)
	}
	return reg.call(ctx, &Invocation{
		Category:  category,
		HandlerID: reg.id,
		Priority:  reg.priority,
		Args:      args,
	})
}

// appendRecord writes one journal record for a completed pass. Failures are
// logged, never propagated.
func (d *Dispatcher[E]) appendRecord(ctx context.Context, label string, invoked, mismatched int, err error, at time.Time, elapsed time.Duration) {
	rec := journal.Record{
		Category:   label,
		At:         at,
		Handlers:   invoked,
		Mismatches: mismatched,
		Duration:   elapsed,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if jerr := d.settings.journal.Append(ctx, rec); jerr != nil {
		observability.LogJournalError(d.settings.logger, label, jerr)
	}
}

// Len returns the number of handlers currently registered for a category.
func (d *Dispatcher[E]) Len(category E) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.handlers[category])
}

// Categories returns the categories with at least one registered handler,
// in no particular order.
func (d *Dispatcher[E]) Categories() []E {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cats := make([]E, 0, len(d.handlers))
	for cat := range d.handlers {
		cats = append(cats, cat)
	}
	return cats
}

// Clear removes every registration from every category. The id counter is
// not reset; ids are never reused.
func (d *Dispatcher[E]) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers = make(map[E][]registration)
}

// Stats returns cumulative dispatch counters.
func (d *Dispatcher[E]) Stats() Stats {
	return d.stats.snapshot()
}

// categoryLabel renders a category for logs, metrics, and the journal.
func categoryLabel(category any) string {
	switch v := category.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
