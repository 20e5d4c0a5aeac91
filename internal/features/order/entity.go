package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is the append-only record of a completed checkout. Products is a
// snapshot of the requested line items, not a re-read of the cart.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	Address    string             `bson:"address" json:"address"`
	GrandTotal float64            `bson:"grandTotal" json:"grandTotal"`
	Products   []OrderLine        `bson:"products" json:"products"`
	OrderedAt  time.Time          `bson:"ordered_at" json:"orderedAt"`
}

type OrderLine struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Price     float64            `bson:"price,omitempty" json:"price,omitempty"`
}
