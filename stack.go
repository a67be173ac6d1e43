package goaction

import "context"

// invocation is the per-call state of an action. It is never shared between
// calls.
type invocation struct {
	def     *definition
	handler Handler
	raw     any
	meta    Meta // per-call copy of the definition's meta
	input   map[string]any

	// ctx is the latest context observed, reported to onError hooks.
	ctx     Values
	data    any
	handled bool
}

// step runs middleware i with context cur. Past the last middleware it runs
// the handler and returns cur unchanged.
func (inv *invocation) step(ctx context.Context, i int, cur Values) (Values, error) {
	inv.ctx = cur
	if i >= len(inv.def.middlewares) {
		data, err := inv.handler(ctx, Request{Ctx: cur, Meta: inv.meta, Input: inv.input})
		if err != nil {
			return nil, err
		}
		inv.data, inv.handled = data, true
		return cur, nil
	}
	called := false
	next := func(ctx context.Context, patch Values) (Values, error) {
		if called {
			return nil, NewError(CodeMiddlewareError, "next called more than once", nil)
		}
		called = true
		forward := cur
		if patch != nil {
			forward = cur.merge(patch)
		}
		return inv.step(ctx, i+1, forward)
	}
	out, err := inv.def.middlewares[i](ctx, MiddlewareOpts{
		Meta:     inv.meta,
		Ctx:      cur,
		Input:    inv.input,
		RawInput: inv.raw,
		Next:     next,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = cur
	}
	inv.ctx = out
	return out, nil
}
