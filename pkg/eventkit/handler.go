package eventkit

import (
	"context"
	"reflect"
	"strings"
)

// Handler is the uniform invocation capability the dispatcher stores.
// A Handler closes over a fixed argument type list; invoking it with
// arguments that match that list is type-safe, anything else fails with a
// *SignatureError before the wrapped function is called.
//
// Handlers are built with the adapter constructors: On0, On1, On2, On3 for
// fixed typed signatures, OnAny for an untyped variadic signature. The
// interface is closed; implementations outside this package are not
// possible.
type Handler interface {
	// invoke calls the wrapped function with the dispatched arguments.
	invoke(ctx context.Context, args []any) error

	// signature describes the registered argument types for diagnostics.
	signature() string
}

// On0 adapts a no-argument function to a Handler.
// Dispatching with any arguments fails with a *SignatureError.
func On0(fn func(context.Context) error) Handler {
	if fn == nil {
		panic(ErrNilHandler)
	}
	return handler0{fn: fn}
}

// On1 adapts a one-argument function to a Handler.
// The dispatched argument must satisfy a type assertion to A; an untyped
// nil never matches.
func On1[A any](fn func(context.Context, A) error) Handler {
	if fn == nil {
		panic(ErrNilHandler)
	}
	return handler1[A]{fn: fn}
}

// On2 adapts a two-argument function to a Handler.
func On2[A, B any](fn func(context.Context, A, B) error) Handler {
	if fn == nil {
		panic(ErrNilHandler)
	}
	return handler2[A, B]{fn: fn}
}

// On3 adapts a three-argument function to a Handler.
func On3[A, B, C any](fn func(context.Context, A, B, C) error) Handler {
	if fn == nil {
		panic(ErrNilHandler)
	}
	return handler3[A, B, C]{fn: fn}
}

// OnAny adapts a variadic function to a Handler. It accepts any argument
// list, including none, and never signature-mismatches. Use it when one
// handler must observe every dispatch on a category regardless of shape.
func OnAny(fn func(context.Context, ...any) error) Handler {
	if fn == nil {
		panic(ErrNilHandler)
	}
	return handlerAny{fn: fn}
}

type handler0 struct {
	fn func(context.Context) error
}

func (h handler0) invoke(ctx context.Context, args []any) error {
	if len(args) != 0 {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	return h.fn(ctx)
}

func (h handler0) signature() string { return "" }

type handler1[A any] struct {
	fn func(context.Context, A) error
}

func (h handler1[A]) invoke(ctx context.Context, args []any) error {
	if len(args) != 1 {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	a, ok := args[0].(A)
	if !ok {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	return h.fn(ctx, a)
}

func (h handler1[A]) signature() string {
	return typeName[A]()
}

type handler2[A, B any] struct {
	fn func(context.Context, A, B) error
}

func (h handler2[A, B]) invoke(ctx context.Context, args []any) error {
	if len(args) != 2 {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	a, okA := args[0].(A)
	b, okB := args[1].(B)
	if !okA || !okB {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	return h.fn(ctx, a, b)
}

func (h handler2[A, B]) signature() string {
	return typeName[A]() + ", " + typeName[B]()
}

type handler3[A, B, C any] struct {
	fn func(context.Context, A, B, C) error
}

func (h handler3[A, B, C]) invoke(ctx context.Context, args []any) error {
	if len(args) != 3 {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	a, okA := args[0].(A)
	b, okB := args[1].(B)
	c, okC := args[2].(C)
	if !okA || !okB || !okC {
		return &SignatureError{Want: h.signature(), Got: typesOf(args)}
	}
	return h.fn(ctx, a, b, c)
}

func (h handler3[A, B, C]) signature() string {
	return typeName[A]() + ", " + typeName[B]() + ", " + typeName[C]()
}

type handlerAny struct {
	fn func(context.Context, ...any) error
}

func (h handlerAny) invoke(ctx context.Context, args []any) error {
	return h.fn(ctx, args...)
}

func (h handlerAny) signature() string { return "..." }

// typeName returns the display name of a type parameter.
func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// typesOf renders the dynamic types of dispatched arguments.
func typesOf(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = reflect.TypeOf(a).String()
	}
	return strings.Join(parts, ", ")
}
