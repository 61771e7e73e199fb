package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain failure so the delivery layer can pick a
// status code without inspecting messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota // malformed or out-of-range input
	KindAuthentication
	KindAuthorization // role, ownership or lifecycle-state gate failed
	KindNotFound
	KindConflict // uniqueness violation
	KindDependency
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func ErrValidation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ErrAuthentication(format string, args ...any) error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

func ErrAuthorization(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ErrConflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func ErrDependency(format string, args ...any) error {
	return &Error{Kind: KindDependency, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// StatusCode maps a failure to its HTTP status. Unknown errors are treated
// as dependency failures.
func StatusCode(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
