package crm

import (
	"errors"
	"fmt"
)

// Kind classifies the errors returned by the Service.
type Kind string

const (
	DuplicateEmail     Kind = "DUPLICATE_EMAIL"
	InvalidPhoneFormat Kind = "INVALID_PHONE_FORMAT"
	InvalidPrice       Kind = "INVALID_PRICE"
	InvalidStock       Kind = "INVALID_STOCK"
	CustomerNotFound   Kind = "CUSTOMER_NOT_FOUND"
	NoProductsSelected Kind = "NO_PRODUCTS_SELECTED"
	ProductNotFound    Kind = "PRODUCT_NOT_FOUND"
	InvalidInput       Kind = "INVALID_INPUT"
	UnexpectedError    Kind = "UNEXPECTED_ERROR"
)

// Error is the single error type surfaced by the Service. Message is meant
// for API clients; Err keeps the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Extensions is picked up by the GraphQL layer and reported to clients.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

var (
	ErrDuplicateEmail     = &Error{Kind: DuplicateEmail, Message: "Email already exists"}
	ErrInvalidPhoneFormat = &Error{Kind: InvalidPhoneFormat, Message: "Invalid phone format. Use formats like +1234567890 or 123-456-7890"}
	ErrInvalidPrice       = &Error{Kind: InvalidPrice, Message: "Price must be positive"}
	ErrInvalidStock       = &Error{Kind: InvalidStock, Message: "Stock cannot be negative"}
	ErrCustomerNotFound   = &Error{Kind: CustomerNotFound, Message: "Invalid customer ID"}
	ErrNoProductsSelected = &Error{Kind: NoProductsSelected, Message: "At least one product must be selected"}
	ErrProductNotFound    = &Error{Kind: ProductNotFound, Message: "Invalid product ID"}
	ErrInvalidInput       = &Error{Kind: InvalidInput, Message: "Invalid input"}
	ErrUnexpected         = &Error{Kind: UnexpectedError, Message: "Unexpected error"}
)

func productNotFound(id string, cause error) *Error {
	return &Error{
		Kind:    ProductNotFound,
		Message: fmt.Sprintf("Invalid product ID: %s", id),
		Err:     cause,
	}
}

func invalidInput(msg string) *Error {
	return &Error{Kind: InvalidInput, Message: msg}
}

// unexpected wraps a failure that is not part of the validation taxonomy.
// action reads like "creating customer".
func unexpected(action string, cause error) *Error {
	return &Error{
		Kind:    UnexpectedError,
		Message: fmt.Sprintf("Error %s: %v", action, cause),
		Err:     cause,
	}
}

func (e *Error) withCause(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// KindOf returns the kind of err, or UnexpectedError when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnexpectedError
}

// wrap keeps domain errors as they are and turns anything else into an
// UnexpectedError for the given action.
func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return unexpected(action, err)
}
