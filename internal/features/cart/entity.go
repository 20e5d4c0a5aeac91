package cart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one product's reservation in a cart scope. At most one line
// exists per (scope, productID); repeated adds merge into it.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Scope     string             `bson:"scope" json:"-"`
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Price     float64            `bson:"price,omitempty" json:"price,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// LineSnapshot carries the shopper-facing fields copied onto a cart line.
// The core never interprets them.
type LineSnapshot struct {
	Name  string
	Price float64
	Image string
}
