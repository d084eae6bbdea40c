package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error the way the API reports it.
type Kind string

const (
	KindValidation       Kind = "ValidationError"
	KindNotFound         Kind = "NotFound"
	KindNotAuthenticated Kind = "NotAuthenticated"
	KindPermissionDenied Kind = "PermissionDenied"
	KindInvalidState     Kind = "InvalidState"
	KindConflict         Kind = "Conflict"
	KindInternal         Kind = "InternalError"
)

// HTTPStatus maps a kind to the status code the API contract requires.
// Validation failures are 422, not 400.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindNotAuthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindInvalidState:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind plus a detail payload: either a plain message or a
// field -> messages map for validation failures.
type Error struct {
	Kind   Kind
	Detail any
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v (%v)", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// NewFieldError builds a validation error with per-field messages,
// mirroring the serializer-style detail map.
func NewFieldError(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Detail: fields}
}

// WrapInternal hides the storage-level cause behind a uniform internal error.
func WrapInternal(err error) *Error {
	return &Error{Kind: KindInternal, Detail: "Internal Server Error", cause: err}
}

// KindOf extracts the kind of err, defaulting to KindInternal for
// unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// DetailOf returns the user-facing detail payload of err.
func DetailOf(err error) any {
	var de *Error
	if errors.As(err, &de) {
		return de.Detail
	}
	return "Internal Server Error"
}

var (
	ErrEmptyCart = NewError(KindInvalidState, "Cart is empty")

	ErrProductNotFound  = NewError(KindNotFound, "Product not found")
	ErrCartLineNotFound = NewError(KindNotFound, "Not found")
	ErrUserNotFound     = NewError(KindNotFound, "User not found")

	// ErrProductInUse guards order history: an order line snapshot still
	// references the product row.
	ErrProductInUse = NewError(KindConflict, "Product is referenced by existing orders")
)
