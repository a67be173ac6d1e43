package goaction

import (
	"context"
	"log/slog"
	"maps"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	js "github.com/reoring/goaction/jsonschema"
)

// Action is the compiled callable produced by Builder.Execute. It holds no
// mutable state and may be run concurrently.
type Action struct {
	def     *definition
	handler Handler
	input   Schema
	output  Schema
}

// rawJSON marks input that still has to be decoded inside the guarded region.
type rawJSON []byte

// RunJSON decodes data as JSON and runs the action with the result. Malformed
// JSON fails with PARSE_INPUT_ERROR.
func (a *Action) RunJSON(ctx context.Context, data []byte) (Result, error) {
	return a.Run(ctx, rawJSON(data))
}

// Run invokes the action. Failures inside the pipeline are returned as a
// failed Result. The error is non-nil only when a control-flow signal is
// re-raised (it is returned unchanged) or when a hook or the error handler
// fails.
func (a *Action) Run(ctx context.Context, rawInput any) (res Result, err error) {
	inv := &invocation{def: a.def, handler: a.handler, raw: rawInput, meta: maps.Clone(a.def.meta)}
	defer func() {
		ev := HookEvent{Lifecycle: OnSettled, Ctx: inv.ctx, Meta: inv.meta, RawInput: inv.raw}
		serr := runAll(ctx, a.def.hooks.of(OnSettled), ev)
		switch {
		case serr == nil:
		case err == nil:
			res, err = Result{}, serr
		default:
			a.logger().LogAttrs(ctx, slog.LevelWarn, "settled hook failed after earlier error",
				slog.String("error", serr.Error()),
				slog.String("earlier", err.Error()))
		}
	}()

	data, fault := a.guard(ctx, inv)
	if fault == nil {
		if err := a.runSuccess(ctx, inv); err != nil {
			return Result{}, err
		}
		return success(data), nil
	}

	je, reraise := classify(fault, a.def.signal)
	a.logger().LogAttrs(ctx, slog.LevelDebug, "action failed",
		slog.String("code", string(je.Code)),
		slog.String("message", je.Message),
		slog.Bool("handled", inv.handled),
		slog.Bool("reraise", reraise))
	if eh := a.def.errorHandler; eh != nil {
		if err := eh(ctx, je); err != nil {
			return Result{}, errors.Wrap(err, "error handler")
		}
	}
	if reraise {
		if err := a.runSuccess(ctx, inv); err != nil {
			return Result{}, err
		}
		return Result{}, fault.(error)
	}
	ev := HookEvent{Lifecycle: OnError, Ctx: inv.ctx, Meta: inv.meta, RawInput: inv.raw, Error: &je}
	if err := runAll(ctx, a.def.hooks.of(OnError), ev); err != nil {
		return Result{}, err
	}
	return failure(je), nil
}

func (a *Action) runSuccess(ctx context.Context, inv *invocation) error {
	ev := HookEvent{Lifecycle: OnSuccess, Ctx: inv.ctx, Meta: inv.meta, RawInput: inv.raw, Input: inv.input}
	return runAll(ctx, a.def.hooks.of(OnSuccess), ev)
}

// guard runs input validation, context resolution, the middleware stack with
// the handler, and output validation. fault is the returned error or
// recovered panic value, nil on success.
func (a *Action) guard(ctx context.Context, inv *invocation) (data any, fault any) {
	defer func() {
		if r := recover(); r != nil {
			data, fault = nil, r
		}
	}()

	if b, ok := inv.raw.(rawJSON); ok {
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, NewError(CodeParseInputError, "malformed JSON input", err)
		}
		inv.raw = v
	}

	if a.input != nil {
		in, err := validate(ctx, a.input, inv.raw, directionInput)
		if err != nil {
			return nil, err
		}
		inv.input = in
	} else {
		inv.input, _ = inv.raw.(map[string]any)
	}

	cur := Values{}
	if a.def.context != nil {
		v, err := a.def.context(ctx)
		if err != nil {
			return nil, err
		}
		if v != nil {
			cur = v
		}
	}

	final, err := inv.step(ctx, 0, cur)
	if err != nil {
		return nil, err
	}
	inv.ctx = final

	if a.output == nil {
		return inv.data, nil
	}
	out, err := validate(ctx, a.output, inv.data, directionOutput)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Action) logger() *slog.Logger {
	if a.def.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.def.logger
}

// InputSchema describes the combined input fragments, nil when there are none.
func (a *Action) InputSchema() *js.Schema { return jsonSchemaOf(a.input) }

// OutputSchema describes the combined output fragments, nil when there are
// none.
func (a *Action) OutputSchema() *js.Schema { return jsonSchemaOf(a.output) }
