package goaction

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var codeToGRPC = map[Code]codes.Code{
	CodeUnauthorized:     codes.Unauthenticated,
	CodeNotFound:         codes.NotFound,
	CodeInternalError:    codes.Internal,
	CodeBadRequest:       codes.InvalidArgument,
	CodeForbidden:        codes.PermissionDenied,
	CodeConflict:         codes.AlreadyExists,
	CodeError:            codes.Unknown,
	CodeTimeout:          codes.DeadlineExceeded,
	CodePayloadTooLarge:  codes.OutOfRange,
	CodeTooManyRequests:  codes.ResourceExhausted,
	CodeParseInputError:  codes.InvalidArgument,
	CodeParseOutputError: codes.Internal,
	CodeMiddlewareError:  codes.Internal,
	CodeNextError:        codes.Aborted,
}

var codeToHTTP = map[Code]int{
	CodeUnauthorized:     http.StatusUnauthorized,
	CodeNotFound:         http.StatusNotFound,
	CodeInternalError:    http.StatusInternalServerError,
	CodeBadRequest:       http.StatusBadRequest,
	CodeForbidden:        http.StatusForbidden,
	CodeConflict:         http.StatusConflict,
	CodeError:            http.StatusInternalServerError,
	CodeTimeout:          http.StatusRequestTimeout,
	CodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
	CodeTooManyRequests:  http.StatusTooManyRequests,
	CodeParseInputError:  http.StatusBadRequest,
	CodeParseOutputError: http.StatusInternalServerError,
	CodeMiddlewareError:  http.StatusInternalServerError,
	CodeNextError:        http.StatusInternalServerError,
}

// HTTPStatus maps the error code onto an HTTP status. Unknown codes map to 500.
func (e JSONError) HTTPStatus() int {
	if s, ok := codeToHTTP[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// GRPCStatus implements the interface consulted by status.FromError so that an
// action error crossing a gRPC boundary keeps its classification.
func (e JSONError) GRPCStatus() *status.Status {
	c, ok := codeToGRPC[e.Code]
	if !ok {
		c = codes.Unknown
	}
	return status.New(c, e.Message)
}
