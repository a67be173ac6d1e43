package ginmw

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	goaction "github.com/reoring/goaction"
	"github.com/reoring/goaction/middleware"
)

type ctxKeyGin struct{}

// Handle serves a as a gin handler. The JSON request body is the raw input;
// an empty body runs the action with nil input. Results are written with the
// status mapped from their error code. Errors returned by Run (re-raised
// signals, hook failures) are attached to the gin context and answered with
// 500.
func Handle(a *goaction.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx := context.WithValue(c.Request.Context(), ctxKeyGin{}, c)
		var res goaction.Result
		if len(body) == 0 {
			res, err = a.Run(ctx, nil)
		} else {
			res, err = a.RunJSON(ctx, body)
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(middleware.Status(res))
	}
}

// FromContext returns the gin context of an action served by Handle.
func FromContext(ctx context.Context) (*gin.Context, bool) {
	c, ok := ctx.Value(ctxKeyGin{}).(*gin.Context)
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
		patch := make(goaction.Values, len(c.Params))
		for _, p := range c.Params {
			patch[p.Key] = p.Value
		}
		return opts.Next(ctx, patch)
	}
}
