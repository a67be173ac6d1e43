package goaction

import (
	"log/slog"
	"slices"
)

// definition is the accumulated configuration of a builder chain. It is never
// mutated after construction; merge always allocates.
type definition struct {
	inputs       []Schema
	outputs      []Schema
	middlewares  []Middleware
	hooks        hooks
	meta         Meta
	context      ContextFunc
	errorHandler ErrorHandler
	signal       Signal
	logger       *slog.Logger
}

// merge returns base overlaid with delta. Lists concatenate in order, meta is
// shallow-merged, and the single-valued fields keep base unless delta sets
// them.
func (base *definition) merge(delta *definition) *definition {
	out := &definition{
		inputs:       slices.Concat(base.inputs, delta.inputs),
		outputs:      slices.Concat(base.outputs, delta.outputs),
		middlewares:  slices.Concat(base.middlewares, delta.middlewares),
		hooks:        base.hooks.concat(delta.hooks),
		meta:         mergeMeta(base.meta, delta.meta),
		context:      base.context,
		errorHandler: base.errorHandler,
		signal:       base.signal,
		logger:       base.logger,
	}
	if delta.context != nil {
		out.context = delta.context
	}
	if delta.errorHandler != nil {
		out.errorHandler = delta.errorHandler
	}
	if delta.signal != nil {
		out.signal = delta.signal
	}
	if delta.logger != nil {
		out.logger = delta.logger
	}
	return out
}
