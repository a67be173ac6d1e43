package goaction

import (
	stderrors "errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Code classifies an action failure. The set is closed.
type Code string

const (
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeInternalError    Code = "INTERNAL_ERROR"
	CodeBadRequest       Code = "BAD_REQUEST"
	CodeForbidden        Code = "FORBIDDEN"
	CodeConflict         Code = "CONFLICT"
	CodeError            Code = "ERROR"
	CodeTimeout          Code = "TIMEOUT"
	CodePayloadTooLarge  Code = "PAYLOAD_TOO_LARGE"
	CodeTooManyRequests  Code = "TOO_MANY_REQUESTS"
	CodeParseInputError  Code = "PARSE_INPUT_ERROR"
	CodeParseOutputError Code = "PARSE_OUTPUT_ERROR"
	CodeMiddlewareError  Code = "MIDDLEWARE_ERROR"
	CodeNextError        Code = "NEXT_ERROR"
)

var defaultMessages = map[Code]string{
	CodeUnauthorized:     "Unauthorized",
	CodeNotFound:         "Not found",
	CodeInternalError:    "Internal server error",
	CodeBadRequest:       "Bad request",
	CodeForbidden:        "Forbidden",
	CodeConflict:         "Conflict",
	CodeError:            "An error occurred",
	CodeTimeout:          "Request timed out",
	CodePayloadTooLarge:  "Payload too large",
	CodeTooManyRequests:  "Too many requests",
	CodeParseInputError:  "Invalid input",
	CodeParseOutputError: "Invalid output",
	CodeMiddlewareError:  "Middleware error",
	CodeNextError:        "Control flow signal",
}

// DefaultMessage returns the fixed message used when none is supplied.
func DefaultMessage(c Code) string { return defaultMessages[c] }

// Valid reports whether c belongs to the closed code set.
func (c Code) Valid() bool {
	_, ok := defaultMessages[c]
	return ok
}

// ActionError is the typed error raised by user code (middlewares, handlers,
// context providers) to abort an invocation with a specific code.
type ActionError struct {
	Code    Code
	Message string
	Cause   error
}

// NewError builds an ActionError. The effective message is message when
// non-empty, else the message of the normalized cause, else the default
// message for code.
func NewError(code Code, message string, cause any) *ActionError {
	c := WrapCause(cause)
	if message == "" && c != nil {
		message = c.Error()
	}
	if message == "" {
		message = DefaultMessage(code)
	}
	return &ActionError{Code: code, Message: message, Cause: c}
}

// Errorf is NewError with a formatted message and no cause.
func Errorf(code Code, format string, args ...any) *ActionError {
	return NewError(code, fmt.Sprintf(format, args...), nil)
}

func (e *ActionError) Error() string { return string(e.Code) + ": " + e.Message }

func (e *ActionError) Unwrap() error { return e.Cause }

// CauseError carries a structured non-error value recovered as a cause. Its
// Fields mirror the top-level keys of the original value.
type CauseError struct {
	Message string
	Fields  map[string]any
}

func (e *CauseError) Error() string { return e.Message }

// WrapCause normalizes an arbitrary failure value into an error suitable for
// use as a cause. nil and function values yield nil; errors are returned
// unchanged; primitives are boxed; maps and structs become *CauseError.
func WrapCause(v any) error {
	if isNil(v) {
		return nil
	}
	if err, ok := v.(error); ok {
		return err
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return WrapCause(rv.Elem().Interface())
	case reflect.Map, reflect.Struct:
		fields, err := shallowFields(v)
		if err != nil {
			return errors.New(fmt.Sprint(v))
		}
		msg, _ := fields["message"].(string)
		return &CauseError{Message: msg, Fields: fields}
	default:
		return errors.New(fmt.Sprint(v))
	}
}

// isNil reports nil and typed-nil pointers, which carry no cause.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func shallowFields(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JSONError is the normalized, serializable failure carried by a Result.
type JSONError struct {
	Code    Code
	Message string
	Cause   error
}

func (e JSONError) Error() string { return string(e.Code) + ": " + e.Message }

func (e JSONError) Unwrap() error { return e.Cause }

type jsonErrorWire struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   map[string]any `json:"cause,omitempty"`
}

// MarshalJSON renders {code, message, cause?}. A cause is rendered as its
// fields plus its message.
func (e JSONError) MarshalJSON() ([]byte, error) {
	w := jsonErrorWire{Code: e.Code, Message: e.Message}
	if e.Cause != nil {
		w.Cause = map[string]any{}
		var ce *CauseError
		if stderrors.As(e.Cause, &ce) {
			for k, v := range ce.Fields {
				w.Cause[k] = v
			}
		}
		w.Cause["message"] = e.Cause.Error()
	}
	return json.Marshal(w)
}

// Signal reports whether an error is a host-framework control-flow signal
// that must pass through the action unmodified.
type Signal func(err error) bool

type faultKind uint8

const (
	faultUnclassified faultKind = iota
	faultTyped
	faultSignal
	faultGeneric
)

func kindOf(raw any, signal Signal) faultKind {
	err, ok := raw.(error)
	if !ok || isNil(err) {
		return faultUnclassified
	}
	var ae *ActionError
	if stderrors.As(err, &ae) {
		return faultTyped
	}
	if signal != nil && signal(err) {
		return faultSignal
	}
	return faultGeneric
}

// genericCause is the wrapped error of err. Joined errors have no single
// wrapped error and are kept whole.
func genericCause(err error) error {
	if c := WrapCause(stderrors.Unwrap(err)); c != nil {
		return c
	}
	if _, ok := err.(interface{ Unwrap() []error }); ok {
		return err
	}
	return nil
}

// Classify normalizes a failure value without any signal detection.
func Classify(raw any) JSONError {
	je, _ := classify(raw, nil)
	return je
}

// classify normalizes raw. The boolean is true when raw is a control-flow
// signal that must be re-raised.
func classify(raw any, signal Signal) (JSONError, bool) {
	switch kindOf(raw, signal) {
	case faultTyped:
		var ae *ActionError
		stderrors.As(raw.(error), &ae)
		return JSONError{Code: ae.Code, Message: ae.Message, Cause: ae.Cause}, false
	case faultSignal:
		err := raw.(error)
		return JSONError{Code: CodeNextError, Message: err.Error(), Cause: err}, true
	case faultGeneric:
		err := raw.(error)
		return JSONError{Code: CodeError, Message: err.Error(), Cause: genericCause(err)}, false
	default:
		return JSONError{Code: CodeInternalError, Message: DefaultMessage(CodeInternalError)}, false
	}
}
