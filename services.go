package goaction

import "context"

// serviceKey is a unique key per type parameter T for context storage.
type serviceKey[T any] struct{}

// WithService stores a typed service instance in the context passed to
// Action.Run, where context providers, middlewares and handlers can find it.
func WithService[T any](ctx context.Context, svc T) context.Context {
	return context.WithValue(ctx, serviceKey[T]{}, any(svc))
}

// Service retrieves a typed service instance from context.
func Service[T any](ctx context.Context) (T, bool) {
	tv, ok := ctx.Value(serviceKey[T]{}).(T)
	return tv, ok
}

// RequireService returns the service or an INTERNAL_ERROR naming the missing
// type.
func RequireService[T any](ctx context.Context) (T, error) {
	if v, ok := Service[T](ctx); ok {
		return v, nil
	}
	var zero T
	return zero, Errorf(CodeInternalError, "service %T not provided", &zero)
}

// Lookup returns v[key] as T.
func Lookup[T any](v Values, key string) (T, bool) {
	tv, ok := v[key].(T)
	return tv, ok
}
