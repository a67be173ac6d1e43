// Package middleware provides reusable goaction middlewares and the JSON
// response shape shared by the HTTP adapters under middleware/gin and
// middleware/echo.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	goaction "github.com/reoring/goaction"
)

// Logger logs each traversal of the rest of the stack with its duration. It
// forwards the context unchanged.
func Logger(l *slog.Logger) goaction.Middleware {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return func(ctx context.Context, opts goaction.MiddlewareOpts) (goaction.Values, error) {
		start := time.Now()
		out, err := opts.Next(ctx, nil)
		attrs := []slog.Attr{
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("meta", map[string]any(opts.Meta)),
		}
		if err != nil {
			l.LogAttrs(ctx, slog.LevelWarn, "action stack failed", append(attrs, slog.String("error", err.Error()))...)
			return nil, err
		}
		l.LogAttrs(ctx, slog.LevelDebug, "action stack done", attrs...)
		return out, nil
	}
}

// RequireKeys fails with code unless every key is present in the incoming
// context.
func RequireKeys(code goaction.Code, keys ...string) goaction.Middleware {
	return func(ctx context.Context, opts goaction.MiddlewareOpts) (goaction.Values, error) {
		for _, k := range keys {
			if _, ok := opts.Ctx[k]; !ok {
				return nil, goaction.NewError(code, "", nil)
			}
		}
		return opts.Next(ctx, nil)
	}
}

// Provide resolves a value and exposes it to the rest of the stack under key.
// fn sees the context accumulated so far.
func Provide(key string, fn func(ctx context.Context, opts goaction.MiddlewareOpts) (any, error)) goaction.Middleware {
	return func(ctx context.Context, opts goaction.MiddlewareOpts) (goaction.Values, error) {
		v, err := fn(ctx, opts)
		if err != nil {
			return nil, err
		}
		return opts.Next(ctx, goaction.Values{key: v})
	}
}

// ErrorPayload shapes a failed result for JSON responses. Schema issues, when
// present as the cause, are listed under "issues".
func ErrorPayload(je goaction.JSONError) map[string]any {
	body := map[string]any{"code": je.Code, "message": je.Message}
	if iss, ok := goaction.AsIssues(je.Cause); ok {
		body["issues"] = iss
	}
	return map[string]any{"error": body}
}

// Status returns the HTTP status and JSON body for r.
func Status(r goaction.Result) (int, any) {
	if r.Error != nil {
		return r.Error.HTTPStatus(), ErrorPayload(*r.Error)
	}
	return http.StatusOK, map[string]any{"data": r.Data}
}
