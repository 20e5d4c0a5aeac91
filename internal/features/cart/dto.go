package cart

// AddToCartRequest uses the original wire names: the product being reserved
// rides in "_id". Quantity carries no validate tag on purpose: a
// non-positive quantity is an insufficient-stock outcome, not a validation
// failure.
type AddToCartRequest struct {
	ProductID string  `json:"_id" validate:"required"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"omitempty,gte=0"`
	Image     string  `json:"image" validate:"omitempty,url"`
}
