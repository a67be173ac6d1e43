// Package goaction composes validated, context-aware actions.
//
// A Builder accumulates input/output schemas, a middleware stack, lifecycle
// hooks, meta and a default-context provider. Execute compiles the chain into
// an *Action whose Run validates input, threads the context through the
// middlewares into the handler, validates output and returns a Result instead
// of failing with an error.
//
// Design policy:
//   - Builders are values over an immutable definition; chain calls never
//     affect the receiver or its siblings.
//   - Every failure crossing Run is normalized into a JSONError with a code
//     from a closed set. Only control-flow signals recognized by WithSignal
//     escape, unchanged.
//   - Schemas are a contract (Schema, Merger). The dsl package provides the
//     zod-like implementation; any type with Parse works.
//   - Types do not accumulate across the chain: inputs, outputs and contexts
//     are maps described at runtime by the schemas. Use Bind and DecodeInput
//     to move them into declared structs.
//
// Typical usage:
//
//	b := goaction.MustCreate(goaction.WithMeta(goaction.Meta{"service": "users"}))
//	greet := b.
//	    Input(g.Object().Field("name", g.String()).Required().MustBuild()).
//	    Execute(func(ctx context.Context, req goaction.Request) (any, error) {
//	        return map[string]any{"greeting": "hi " + req.Input["name"].(string)}, nil
//	    })
//	res, err := greet.Run(ctx, map[string]any{"name": "Ann"})
package goaction
