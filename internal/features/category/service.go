package category

import (
	"context"
	"strings"

	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type storer interface {
	createOne(ctx context.Context, category *Category) (*Category, error)
	findAll(ctx context.Context) ([]*Category, error)
	updateOne(ctx context.Context, categoryID primitive.ObjectID, fields bson.M) (*Category, error)
	deleteOne(ctx context.Context, categoryID primitive.ObjectID) error
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error) {
	return s.store.createOne(ctx, &Category{
		Name:  strings.TrimSpace(newCategory.Name),
		Image: strings.TrimSpace(newCategory.Image),
	})
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}

func (s *service) updateCategory(ctx context.Context, categoryID primitive.ObjectID, updates *UpdateCategoryRequest) (*Category, error) {
	fields := bson.M{}

	if updates.Name != nil {
		fields["name"] = strings.TrimSpace(*updates.Name)
	}
	if updates.Image != nil {
		fields["image"] = strings.TrimSpace(*updates.Image)
	}

	if len(fields) == 0 {
		return nil, servererrors.ErrInvalidRequestPayload
	}

	return s.store.updateOne(ctx, categoryID, fields)
}

func (s *service) deleteCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	return s.store.deleteOne(ctx, categoryID)
}
