package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies a failure in API responses.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidationFailed  Code = "VALIDATION_FAILED"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeEmailTaken        Code = "EMAIL_TAKEN"
	CodeUpstreamFailure   Code = "UPSTREAM_FAILURE"
	CodeInternal          Code = "INTERNAL"
)

// Response is the wire shape of an error returned to HTTP callers.
// The stock fields are only set for insufficient-stock failures.
type Response struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Product   string `json:"product,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

// ErrEmailTaken is returned when registering or updating a user with an
// email that already belongs to another user.
var ErrEmailTaken = errors.New("email already registered")

// NotFoundError reports an absent user, product or order.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError for the given resource and id.
func NewNotFound(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InsufficientStockError reports a line whose requested quantity exceeds
// the product's available stock.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
		e.Product, e.Available, e.Requested)
}

// InvalidTransitionError reports a forbidden order status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// ValidationError reports a request that failed validation outside of the
// struct-tag checks, e.g. an unknown status value.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UpstreamError wraps a failure to reach or decode a collaborator service.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("call to %s failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
