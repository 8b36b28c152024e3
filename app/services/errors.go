package services

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAlreadyExists
	KindNotAuthorized
	KindWrongCredentials
	KindOutOfStock
	KindInvalid
)

var kindCodes = map[Kind]string{
	KindInternal:         "INTERNAL",
	KindNotFound:         "NOT_FOUND",
	KindAlreadyExists:    "ALREADY_EXISTS",
	KindNotAuthorized:    "NOT_AUTHORIZED",
	KindWrongCredentials: "WRONG_CREDENTIALS",
	KindOutOfStock:       "OUT_OF_STOCK",
	KindInvalid:          "BAD_INPUT",
}

// Code is the machine-readable name clients match on.
func (k Kind) Code() string {
	return kindCodes[k]
}

// Error is a failure the caller is allowed to see. Anything that is not an
// *Error is an infrastructure failure and must not reach the client as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity: "Client not found".
func NotFound(entity string) *Error {
	return newError(KindNotFound, "%s not found", entity)
}

// AlreadyExists reports a unique-email clash: "User already exists".
func AlreadyExists(entity string) *Error {
	return newError(KindAlreadyExists, "%s already exists", entity)
}

// NotAuthorized reports a missing identity or a foreign owner.
func NotAuthorized() *Error {
	return newError(KindNotAuthorized, "Not authorized!")
}

// Invalid reports input that failed validation.
func Invalid(msg string) *Error {
	return newError(KindInvalid, "%s", msg)
}

// KindOf returns the kind of err, or KindInternal for anything that is not
// an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
