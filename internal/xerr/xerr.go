// Package xerr defines the error-kind taxonomy shared across xentbench's
// components. Kinds are sentinel errors meant to be wrapped with fmt.Errorf
// and matched with errors.Is, not a custom exception framework.
package xerr

import "errors"

// Sentinel kinds, one per spec.md §7 taxonomy entry.
var (
	// ErrConfiguration covers bad config shape, unknown player type, or a
	// missing required option. Fatal, reported before any work starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrSyntax covers DSL parse failures. Fatal for the affected game;
	// other games continue.
	ErrSyntax = errors.New("syntax error")

	// ErrGame covers runtime violations: write to an already-set static
	// register, a missing beacon, a type mismatch in an expression. Fails
	// the unit; the benchmark continues.
	ErrGame = errors.New("game error")

	// ErrType covers invalid operand combinations on scored types. Fails
	// the unit.
	ErrType = errors.New("type error")

	// ErrApi covers transport/authorization/rate-limit/invalid-request/
	// server errors from external model endpoints.
	ErrApi = errors.New("api error")

	// ErrHalt is a cooperative request to end a round or unit early. Not
	// an error for the benchmark as a whole.
	ErrHalt = errors.New("halt")

	// ErrInternal covers invariant violations in xentbench itself.
	ErrInternal = errors.New("internal error")
)

// Line carries the DSL line number a Syntax or Game error occurred at, when
// known. Line numbers are 1-indexed and count blank/comment lines, matching
// the parser's line-indexed instruction stream.
type Line struct {
	err  error
	line int
}

func (l *Line) Error() string {
	return l.err.Error()
}

func (l *Line) Unwrap() error {
	return l.err
}

// LineNum returns the originating line number.
func (l *Line) LineNum() int {
	return l.line
}

// WithLine wraps err with a line number, preserving errors.Is/As against err.
func WithLine(err error, line int) error {
	return &Line{err: err, line: line}
}

// ApiDetail carries the provider tag and HTTP status code for an Api-kind
// error, matching XentApiError's fields in the original implementation.
type ApiDetail struct {
	err        error
	Provider   string
	StatusCode int
}

func (a *ApiDetail) Error() string {
	return a.err.Error()
}

// Unwrap exposes both the wrapped error and ErrApi, so errors.Is(err,
// ErrApi) holds for every error built by NewApiError.
func (a *ApiDetail) Unwrap() []error {
	return []error{a.err, ErrApi}
}

// NewApiError builds an Api-kind error carrying provider/status detail.
func NewApiError(err error, provider string, statusCode int) error {
	return &ApiDetail{err: err, Provider: provider, StatusCode: statusCode}
}

// Retryable reports whether an Api-kind error's status code should be
// retried with backoff: rate-limit (429) and server errors (5xx). Auth
// (401/403) and invalid-request (400) are not retried.
func Retryable(err error) bool {
	var detail *ApiDetail
	if !errors.As(err, &detail) {
		return false
	}
	return detail.StatusCode == 429 || detail.StatusCode >= 500
}
