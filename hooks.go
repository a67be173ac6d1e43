package goaction

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// hooks stores callbacks per lifecycle. Values are copy-on-write: register
// never touches the receiver's slices.
type hooks struct {
	onSuccess []HookFunc
	onError   []HookFunc
	onSettled []HookFunc
}

func (h hooks) register(l Lifecycle, fn HookFunc) hooks {
	if fn == nil {
		panic(fmt.Sprintf("goaction: nil %s hook", l))
	}
	switch l {
	case OnSuccess:
		h.onSuccess = slices.Concat(h.onSuccess, []HookFunc{fn})
	case OnError:
		h.onError = slices.Concat(h.onError, []HookFunc{fn})
	case OnSettled:
		h.onSettled = slices.Concat(h.onSettled, []HookFunc{fn})
	default:
		panic(fmt.Sprintf("goaction: unknown lifecycle %q", l))
	}
	return h
}

func (h hooks) concat(delta hooks) hooks {
	return hooks{
		onSuccess: slices.Concat(h.onSuccess, delta.onSuccess),
		onError:   slices.Concat(h.onError, delta.onError),
		onSettled: slices.Concat(h.onSettled, delta.onSettled),
	}
}

func (h hooks) of(l Lifecycle) []HookFunc {
	switch l {
	case OnSuccess:
		return h.onSuccess
	case OnError:
		return h.onError
	default:
		return h.onSettled
	}
}

// runAll calls each hook in registration order and stops at the first
// failure.
func runAll(ctx context.Context, seq []HookFunc, ev HookEvent) error {
	for i, fn := range seq {
		if err := fn(ctx, ev); err != nil {
			return errors.Wrapf(err, "%s hook %d", ev.Lifecycle, i)
		}
	}
	return nil
}
