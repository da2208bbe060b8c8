package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the service-wide error type. Code doubles as the HTTP status the
// error maps to at the API boundary.
type Error struct {
	Code  int    `json:"-"`
	Msg   string `json:"error"`
	Cause error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches two *Error values by code and message so that sentinel errors
// survive wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Msg == t.Msg
}

func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func (e *Error) WithCause(cause error) *Error {
	return &Error{Code: e.Code, Msg: e.Msg, Cause: cause}
}

// ErrNoMessages signals that an archive parsed cleanly but yielded zero
// message records. Callers must never conflate it with an empty-but-valid
// report.
var ErrNoMessages = New(http.StatusUnprocessableEntity, "No messages found in ZIP")

// InvalidArchive marks input that is not a valid zip container. Fatal for the
// whole request; no partial report is produced.
func InvalidArchive(cause error) *Error {
	return &Error{Code: http.StatusBadRequest, Msg: "not a valid ZIP archive", Cause: cause}
}

func InvalidArg(name string) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf("invalid argument: %s", name))
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, fmt.Sprintf("%s not found", what))
}

func Internal(cause error) *Error {
	return &Error{Code: http.StatusInternalServerError, Msg: "internal error", Cause: cause}
}

// HTTPStatus resolves the status code for any error, defaulting to 500.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// Message resolves the external-facing message for any error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}
