package goaction

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes produced by schemas.
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeUnknownKey  = "unknown_key"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodeParseError  = "parse_error"
	CodeCustom      = "custom"
)

// Issue represents a single structural validation failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string
	Message string
	Hint    string
	// Params carries structured parameters (e.g., {"min":1}) for i18n.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Lines renders one line per issue, prefixing the field path when the issue
// is not about the root value.
func (iss Issues) Lines() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		p := strings.TrimPrefix(it.Path, "/")
		if p == "" {
			out = append(out, it.Message)
			continue
		}
		out = append(out, p+": "+it.Message)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with base, which must be a JSON Pointer.
func (iss Issues) Rebase(base string) Issues {
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch {
		case it.Path == "" || it.Path == "/":
			it.Path = base
		case it.Path[0] == '/':
			it.Path = base + it.Path
		default:
			it.Path = base + "/" + it.Path
		}
		out = append(out, it)
	}
	return out
}
