package ginmw_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	goaction "github.com/reoring/goaction"
	g "github.com/reoring/goaction/dsl"
	ginmw "github.com/reoring/goaction/middleware/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	a := goaction.MustCreate().
		Middleware(ginmw.Params()).
		Input(g.Object().Field("name", g.String()).Required().MustBuild()).
		Execute(func(_ context.Context, req goaction.Request) (any, error) {
			return map[string]any{"id": req.Ctx["id"], "name": req.Input["name"]}, nil
		})
	r := gin.New()
	r.POST("/users/:id", ginmw.Handle(a))
	return r
}

func TestHandle_Success(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/42", strings.NewReader(`{"name":"Ann"}`))
	newRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"data":{"id":"42","name":"Ann"}}`, w.Body.String())
}

func TestHandle_ValidationFailure(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/42", strings.NewReader(`{}`))
	newRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"PARSE_INPUT_ERROR"`)
	require.Contains(t, w.Body.String(), `"/name"`)
}

func TestHandle_MalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/1", strings.NewReader(`{"name":`))
	newRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
