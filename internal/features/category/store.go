package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "categories"

type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		col: db.Collection(collectionName),
	}
}

func (s *Store) createOne(ctx context.Context, category *Category) (*Category, error) {
	category.CreatedAt = time.Now().UTC()

	res, err := s.col.InsertOne(ctx, category)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new category in category store: %w",
			err,
		)
	}

	category.ID = res.InsertedID.(primitive.ObjectID)

	return category, nil
}

func (s *Store) findAll(ctx context.Context) (categories []*Category, err error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all categories from category store: %w",
			err,
		)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf(
			"failed to decode categories from category store: %w",
			err,
		)
	}

	return categories, nil
}

func (s *Store) updateOne(ctx context.Context, categoryID primitive.ObjectID, fields bson.M) (*Category, error) {
	var category Category

	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": categoryID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to update category in category store: %w",
			err,
		)
	}

	return &category, nil
}

func (s *Store) deleteOne(ctx context.Context, categoryID primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return fmt.Errorf(
			"failed to delete category in category store: %w",
			err,
		)
	}

	if res.DeletedCount == 0 {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}
