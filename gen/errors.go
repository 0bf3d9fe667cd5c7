package gen

import (
	"errors"
	"fmt"
	"go/token"
)

// Sentinel errors. Every generation failure wraps exactly one of them, so
// callers can classify with errors.Is.
var (
	// ErrConfigSyntax reports a malformed directive configuration, e.g. a
	// key_function value without the " -> " separator.
	ErrConfigSyntax = errors.New("config syntax error")

	// ErrUnknownOption reports an option keyword the generator does not know.
	ErrUnknownOption = errors.New("unknown option")

	// ErrSignature reports a function or a configured name that cannot be
	// memoized: invalid identifiers, generic functions, non-comparable
	// default keys, missing bodies.
	ErrSignature = errors.New("signature error")

	// ErrNoDirectives is returned when a file contains no annotated function.
	ErrNoDirectives = errors.New("no memoize directives")
)

// Error is a positioned generation failure.
type Error struct {
	Pos  token.Position // zero when the failure has no source position
	Func string         // annotated function, empty for file-level failures
	Err  error          // one of the sentinels above
	Msg  string
}

func (e *Error) Error() string {
	prefix := ""
	if e.Pos.IsValid() {
		prefix = e.Pos.String() + ": "
	}
	if e.Func != "" {
		prefix += e.Func + ": "
	}
	return fmt.Sprintf("%s%v: %s", prefix, e.Err, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Err: kind, Msg: fmt.Sprintf(format, args...)}
}

// at fills in position and function name if they are not set yet.
func at(err error, pos token.Position, fn string) error {
	var ge *Error
	if !errors.As(err, &ge) {
		return err
	}
	if !ge.Pos.IsValid() {
		ge.Pos = pos
	}
	if ge.Func == "" {
		ge.Func = fn
	}
	return ge
}
