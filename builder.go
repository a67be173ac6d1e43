package goaction

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Builder accumulates an action definition. Every chain method returns a new
// Builder; the receiver keeps behaving exactly as before.
type Builder struct {
	def *definition
}

// Option configures the initial definition produced by Create.
type Option func(*definition) error

// WithMeta sets the initial meta.
func WithMeta(m Meta) Option {
	return func(d *definition) error {
		d.meta = mergeMeta(d.meta, m)
		return nil
	}
}

// WithContext sets the default-context provider.
func WithContext(fn ContextFunc) Option {
	return func(d *definition) error {
		if fn == nil {
			return errors.New("goaction: context provider must be callable")
		}
		d.context = fn
		return nil
	}
}

// WithErrorHandler sets the handler invoked once per classified error.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(d *definition) error {
		if fn == nil {
			return errors.New("goaction: error handler must be callable")
		}
		d.errorHandler = fn
		return nil
	}
}

// WithSignal installs the predicate recognizing host-framework control-flow
// signals, which are re-raised instead of returned as results.
func WithSignal(fn Signal) Option {
	return func(d *definition) error {
		if fn == nil {
			return errors.New("goaction: signal predicate must be callable")
		}
		d.signal = fn
		return nil
	}
}

// WithLogger sets the logger used for classified errors.
func WithLogger(l *slog.Logger) Option {
	return func(d *definition) error {
		if l == nil {
			return errors.New("goaction: nil logger")
		}
		d.logger = l
		return nil
	}
}

// Create returns an empty builder bound to the given options. Options are
// validated here so that misconfiguration fails at setup time.
func Create(opts ...Option) (Builder, error) {
	d := &definition{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		if err := o(d); err != nil {
			return Builder{}, err
		}
	}
	return Builder{def: d}, nil
}

// MustCreate is like Create but panics on error.
func MustCreate(opts ...Option) Builder {
	b, err := Create(opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Builder) base() *definition {
	if b.def == nil {
		return &definition{logger: slog.New(slog.DiscardHandler)}
	}
	return b.def
}

func (b Builder) with(delta *definition) Builder {
	return Builder{def: b.base().merge(delta)}
}

// Input appends an input schema fragment.
func (b Builder) Input(s Schema) Builder { return b.with(&definition{inputs: []Schema{s}}) }

// Output appends an output schema fragment.
func (b Builder) Output(s Schema) Builder { return b.with(&definition{outputs: []Schema{s}}) }

// Middleware appends a middleware to the stack.
func (b Builder) Middleware(m Middleware) Builder {
	return b.with(&definition{middlewares: []Middleware{m}})
}

// Meta shallow-merges m into the accumulated meta.
func (b Builder) Meta(m Meta) Builder { return b.with(&definition{meta: m}) }

// Context replaces the default-context provider.
func (b Builder) Context(fn ContextFunc) Builder { return b.with(&definition{context: fn}) }

// Hook registers fn for lifecycle l. It panics on an unknown lifecycle or a
// nil fn.
func (b Builder) Hook(l Lifecycle, fn HookFunc) Builder {
	return b.with(&definition{hooks: hooks{}.register(l, fn)})
}

// OnSuccess registers a hook receiving the final context and validated input.
func (b Builder) OnSuccess(fn HookFunc) Builder { return b.Hook(OnSuccess, fn) }

// OnError registers a hook receiving the classified error.
func (b Builder) OnError(fn HookFunc) Builder { return b.Hook(OnError, fn) }

// OnSettled registers a hook that runs once after every invocation.
func (b Builder) OnSettled(fn HookFunc) Builder { return b.Hook(OnSettled, fn) }

// Execute closes over the accumulated definition and returns the callable
// action.
func (b Builder) Execute(h Handler) *Action {
	d := b.base()
	return &Action{
		def:     d,
		handler: h,
		input:   combine(d.inputs),
		output:  combine(d.outputs),
	}
}
