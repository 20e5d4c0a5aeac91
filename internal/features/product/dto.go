package product

import "go.mongodb.org/mongo-driver/bson/primitive"

// Requests

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=100,noAllRepeatingChars"`
	Description string  `json:"description" validate:"required,min=10,max=500"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Rating      float64 `json:"rating" validate:"min=0,max=5"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=100,noAllRepeatingChars"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=500"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Rating      *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	Quantity    *int     `json:"quantity" validate:"omitempty,min=0"`
	Image       *string  `json:"image" validate:"omitempty,url"`
}

type FilterOpts struct {
	ID       primitive.ObjectID
	Category string
	Rating   float64 `validate:"min=0,max=5"`
	Search   string
}

type SortOpts struct {
	SortBy    string `validate:"omitempty,oneof=name price rating quantity createdAt"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

type PageOpts struct {
	Page  int64 `validate:"min=1"`
	Limit int64 `validate:"min=1,max=100"`
}

type ListProductsQuery struct {
	FilterOpts FilterOpts
	SortOpts   SortOpts
	PageOpts   PageOpts
}
