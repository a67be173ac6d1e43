package goaction

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Result is the terminal value of an invocation: either Data (Error == nil)
// or Error. It is never both.
type Result struct {
	Data  any        `json:"data"`
	Error *JSONError `json:"error"`
}

func success(data any) Result { return Result{Data: data} }

func failure(je JSONError) Result { return Result{Error: &je} }

// IsSuccess reports whether r carries data.
func IsSuccess(r Result) bool { return r.Error == nil }

// IsFailure reports whether r carries an error.
func IsFailure(r Result) bool { return r.Error != nil }

// Bind converts a successful result's data into T by way of its JSON form.
// A failed result returns its JSONError.
func Bind[T any](r Result) (T, error) {
	var out T
	if r.Error != nil {
		return out, *r.Error
	}
	if err := convert(r.Data, &out); err != nil {
		return out, errors.Wrap(err, "binding result data")
	}
	return out, nil
}

// DecodeInput converts the validated input of a request into T.
func DecodeInput[T any](req Request) (T, error) {
	var out T
	if err := convert(req.Input, &out); err != nil {
		return out, errors.Wrap(err, "decoding input")
	}
	return out, nil
}

func convert(v any, dst any) error {
	if t, ok := v.(map[string]any); ok && t == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
