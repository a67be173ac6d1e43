package goaction

import (
	"context"
	"maps"
)

// Values is the structured context threaded through middlewares into the
// handler. It is extended by shallow merges, never mutated in place.
type Values map[string]any

// Meta is fixed definition-time data visible to every middleware and hook.
// A nil Meta means no meta was ever supplied.
type Meta map[string]any

// merge returns a new map holding base overlaid with patch (patch wins).
func (v Values) merge(patch Values) Values {
	out := make(Values, len(v)+len(patch))
	maps.Copy(out, v)
	maps.Copy(out, patch)
	return out
}

func mergeMeta(base, delta Meta) Meta {
	if base == nil && delta == nil {
		return nil
	}
	out := make(Meta, len(base)+len(delta))
	maps.Copy(out, base)
	maps.Copy(out, delta)
	return out
}

// ContextFunc resolves the default context of an invocation.
type ContextFunc func(ctx context.Context) (Values, error)

// StaticContext returns a ContextFunc that always yields a copy of v.
func StaticContext(v Values) ContextFunc {
	return func(context.Context) (Values, error) { return maps.Clone(v), nil }
}

// NextFunc runs the remainder of the middleware stack with the current
// context shallow-merged with patch (nil patch passes it unchanged), and
// returns the final context.
type NextFunc func(ctx context.Context, patch Values) (Values, error)

// MiddlewareOpts is what a middleware receives.
type MiddlewareOpts struct {
	Meta     Meta
	Ctx      Values
	Input    map[string]any
	RawInput any
	Next     NextFunc
}

// Middleware transforms the context. It must call opts.Next to let the rest of
// the stack and the handler run; returning without calling it short-circuits.
type Middleware func(ctx context.Context, opts MiddlewareOpts) (Values, error)

// Request is what the handler receives.
type Request struct {
	Ctx   Values
	Meta  Meta
	Input map[string]any
}

// Handler produces the action's data.
type Handler func(ctx context.Context, req Request) (any, error)

// Lifecycle names a hook stage.
type Lifecycle string

const (
	OnSuccess Lifecycle = "onSuccess"
	OnError   Lifecycle = "onError"
	OnSettled Lifecycle = "onSettled"
)

// HookEvent is what a hook receives. Input is set for onSuccess, Error for
// onError.
type HookEvent struct {
	Lifecycle Lifecycle
	Ctx       Values
	Meta      Meta
	RawInput  any
	Input     map[string]any
	Error     *JSONError
}

// HookFunc is a lifecycle callback. A returned error propagates to the caller
// of Action.Run.
type HookFunc func(ctx context.Context, ev HookEvent) error

// ErrorHandler observes every classified error before hooks run. A returned
// error propagates to the caller of Action.Run.
type ErrorHandler func(ctx context.Context, err JSONError) error
