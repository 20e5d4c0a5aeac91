package product

import (
	"context"
	"strings"

	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type storer interface {
	createOne(ctx context.Context, product *Product) (*Product, error)
	findAll(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, int64, error)
	findByID(ctx context.Context, productID primitive.ObjectID) (*Product, error)
	findByName(ctx context.Context, name string) (*Product, error)
	updateOne(ctx context.Context, productID primitive.ObjectID, fields bson.M) (*Product, error)
	deleteOne(ctx context.Context, productID primitive.ObjectID) error
	reserveStock(ctx context.Context, productID primitive.ObjectID, amount int) error
	releaseStock(ctx context.Context, productID primitive.ObjectID, amount int) error
}

type Service struct {
	store  storer
	logger *zap.Logger
}

func NewService(store storer, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

func (s *Service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)
	newProduct.Image = strings.TrimSpace(newProduct.Image)

	existing, err := s.store.findByName(ctx, newProduct.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrProductAlreadyExists
	}

	return s.store.createOne(ctx, &Product{
		Name:        newProduct.Name,
		Description: newProduct.Description,
		Category:    newProduct.Category,
		Price:       newProduct.Price,
		Rating:      newProduct.Rating,
		Quantity:    newProduct.Quantity,
		Image:       newProduct.Image,
	})
}

func (s *Service) getAllProducts(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, int64, error) {
	return s.store.findAll(ctx, queryItems)
}

func (s *Service) getProduct(ctx context.Context, productID primitive.ObjectID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

func (s *Service) updateProduct(ctx context.Context, productID primitive.ObjectID, updates *UpdateProductRequest) (*Product, error) {
	fields := bson.M{}

	if updates.Name != nil {
		fields["name"] = strings.TrimSpace(*updates.Name)
	}
	if updates.Description != nil {
		fields["description"] = strings.TrimSpace(*updates.Description)
	}
	if updates.Category != nil {
		fields["category"] = *updates.Category
	}
	if updates.Price != nil {
		fields["price"] = *updates.Price
	}
	if updates.Rating != nil {
		fields["rating"] = *updates.Rating
	}
	if updates.Quantity != nil {
		fields["quantity"] = *updates.Quantity
	}
	if updates.Image != nil {
		fields["image"] = strings.TrimSpace(*updates.Image)
	}

	if len(fields) == 0 {
		return nil, servererrors.ErrInvalidRequestPayload
	}

	return s.store.updateOne(ctx, productID, fields)
}

func (s *Service) deleteProduct(ctx context.Context, productID primitive.ObjectID) error {
	return s.store.deleteOne(ctx, productID)
}

// ReserveStock atomically claims amount units of a product's quantity.
// Returns servererrors.ErrProductNotFound or servererrors.ErrInsufficientStock
// when the claim cannot be honored.
func (s *Service) ReserveStock(ctx context.Context, productID primitive.ObjectID, amount int) error {
	return s.store.reserveStock(ctx, productID, amount)
}

// ReleaseStock hands a previous reservation back to the pool.
func (s *Service) ReleaseStock(ctx context.Context, productID primitive.ObjectID, amount int) error {
	return s.store.releaseStock(ctx, productID, amount)
}
