package order

import "fmt"

// Requests

type PlaceOrderRequest struct {
	Name       string             `json:"name" validate:"required"`
	Phone      string             `json:"phone" validate:"required"`
	Address    string             `json:"address" validate:"required"`
	GrandTotal float64            `json:"grandTotal" validate:"required,gt=0"`
	Products   []OrderLineRequest `json:"products" validate:"required,min=1,dive"`
}

// OrderLineRequest uses the original wire names: the product rides in "_id".
type OrderLineRequest struct {
	ProductID string  `json:"_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"omitempty,gte=0"`
}

// LineFailure reports why a single line item could not be fulfilled.
type LineFailure struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

const (
	reasonNotFound          = "not found"
	reasonInsufficientStock = "insufficient stock"
)

// CheckoutRejectedError is returned when one or more line items cannot be
// fulfilled. By the time it is returned, every reservation made for the
// request has been released: no decrement persists and no order exists.
type CheckoutRejectedError struct {
	Failures []LineFailure
}

func (e *CheckoutRejectedError) Error() string {
	return fmt.Sprintf(
		"order rejected: %d unavailable product(s)",
		len(e.Failures),
	)
}
