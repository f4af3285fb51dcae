// Package apperr carries the error categories every engine reports: bad input, missing entity,
// conflicting state, failed authentication and unexpected store failures.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindInput
	KindNotFound
	KindConflict
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	default:
		return "unexpected"
	}
}

// Status maps a kind onto the HTTP status the API answers with.
func (k Kind) Status() int {
	switch k {
	case KindInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// InvalidCredentials is the only message login failures ever carry.
const InvalidCredentials = "Invalid email/username or password!"

type Error struct {
	Kind    Kind
	Message string
	Field   string
	IDs     []uint
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Input(field, msg string) *Error {
	return &Error{Kind: KindInput, Field: field, Message: msg}
}

func NotFound(msg string, ids ...uint) *Error {
	return &Error{Kind: KindNotFound, Message: msg, IDs: ids}
}

func Conflict(msg string, ids ...uint) *Error {
	return &Error{Kind: KindConflict, Message: msg, IDs: ids}
}

func Auth() *Error {
	return &Error{Kind: KindAuth, Message: InvalidCredentials}
}

func Unexpected(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: KindUnexpected, Message: "unexpected error", Err: err}
}

// KindOf reports the category of err. Errors that are not *Error count as unexpected.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// JoinIDs renders ids as "1, 2, 3" for messages.
func JoinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
