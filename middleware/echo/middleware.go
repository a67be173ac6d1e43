package echomw

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	goaction "github.com/reoring/goaction"
	"github.com/reoring/goaction/middleware"
)

type ctxKeyEcho struct{}

// Handle serves a as an echo handler. The JSON request body is the raw input;
// an empty body runs the action with nil input. Errors returned by Run are
// passed to echo's HTTP error handler.
func Handle(a *goaction.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		ctx := context.WithValue(c.Request().Context(), ctxKeyEcho{}, c)
		var res goaction.Result
		if len(body) == 0 {
			res, err = a.Run(ctx, nil)
		} else {
			res, err = a.RunJSON(ctx, body)
		}
		if err != nil {
			return err
		}
		return c.JSON(middleware.Status(res))
	}
}

// FromContext returns the echo context of an action served by Handle.
func FromContext(ctx context.Context) (echo.Context, bool) {
	c, ok := ctx.Value(ctxKeyEcho{}).(echo.Context)
	return c, ok
}

// Params is a middleware exposing the route parameters to the rest of the
// stack, each under its own name. Outside Handle it forwards unchanged.
func Params() goaction.Middleware {
	return func(ctx context.Context, opts goaction.MiddlewareOpts) (goaction.Values, error) {
		c, ok := FromContext(ctx)
		if !ok {
			return opts.Next(ctx, nil)
		}
		names, values := c.ParamNames(), c.ParamValues()
		patch := make(goaction.Values, len(names))
		for i, n := range names {
			if i < len(values) {
				patch[n] = values[i]
			}
		}
		return opts.Next(ctx, patch)
	}
}
