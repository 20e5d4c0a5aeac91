package event

import "go.mongodb.org/mongo-driver/bson/primitive"

const OrderPlacedEventName EventName = "order.placed"

type OrderedProduct struct {
	ProductID primitive.ObjectID
	Quantity  int
}

// OrderPlacedEvent is published after a checkout has decremented stock,
// written the order and cleared the cart.
type OrderPlacedEvent struct {
	OrderID    primitive.ObjectID
	GrandTotal float64
	Products   []OrderedProduct
}

func (e *OrderPlacedEvent) GetEventName() EventName {
	return OrderPlacedEventName
}
