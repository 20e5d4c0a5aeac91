package servererrors

import "errors"

// Business-rule sentinels. These surface to clients as ordinary
// unsuccessful responses, never as a 5xx.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCartLineNotFound = errors.New("cart item not found")

	ErrProductAlreadyExists = errors.New("product already exists")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidOrder         = errors.New("invalid order")
)

// ServerError carries the transport status a handler decided on, so the
// error middleware can map it without re-inspecting the cause.
type ServerError struct {
	StatusCode int
	message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.message
}
