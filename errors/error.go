package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

var (
	ErrEndOfData       = stderrors.New("end of data")
	ErrUnsupportedSize = stderrors.New("file size not supported yet")
	ErrReleaseTimeout  = stderrors.New("mapping was not released in time")
	ErrClosed          = stderrors.New("file object is closed")
	ErrReadOnly        = stderrors.New("file object is read only")
	ErrMalformed       = stderrors.New("malformed record")
	ErrUnrepresentable = stderrors.New("location is not representable")
	ErrNoSelector      = stderrors.New("no file system selector")
)

type Error struct {
	Err   error
	Stack []byte
}

// Errorf formats like fmt.Errorf (so %w wraps) and records the stack of
// the caller.
func Errorf(format string, args ...interface{}) error {
	buf := make([]byte, 50000)
	n := runtime.Stack(buf, false)
	trace := make([]byte, n)
	copy(trace, buf)
	return &Error{
		Err:   fmt.Errorf(format, args...),
		Stack: trace,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s\n%s", e.Err, string(e.Stack))
}

func (e *Error) String() string {
	return e.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the error text without the stack trace.
func (e *Error) Message() string {
	return e.Err.Error()
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Message is the text of err without any stack trace.
func Message(err error) string {
	var e *Error
	if As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
