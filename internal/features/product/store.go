package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "products"

type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		col: db.Collection(collectionName),
	}
}

func (s *Store) createOne(ctx context.Context, product *Product) (*Product, error) {
	product.CreatedAt = time.Now().UTC()

	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	product.ID = res.InsertedID.(primitive.ObjectID)

	return product, nil
}

func (s *Store) findAll(ctx context.Context, queryItems *ListProductsQuery) (products []*Product, count int64, err error) {
	filter := buildFilter(queryItems)

	count, err = s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to count products in product store: %w",
			err,
		)
	}

	opts := options.Find().
		SetSkip((queryItems.PageOpts.Page - 1) * queryItems.PageOpts.Limit).
		SetLimit(queryItems.PageOpts.Limit)

	if queryItems.SortOpts.SortBy != "" {
		direction := 1
		if queryItems.SortOpts.SortOrder == "desc" {
			direction = -1
		}

		opts.SetSort(bson.D{{
			Key:   sortField(queryItems.SortOpts.SortBy),
			Value: direction,
		}})
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf(
			"failed to decode products from product store: %w",
			err,
		)
	}

	return products, count, nil
}

func (s *Store) findByID(ctx context.Context, productID primitive.ObjectID) (*Product, error) {
	var product Product

	err := s.col.FindOne(
		ctx,
		bson.M{"_id": productID},
	).Decode(&product)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to find product in product store: %w",
			err,
		)
	}

	return &product, nil
}

// findByName returns (nil, nil) when no product carries the name.
func (s *Store) findByName(ctx context.Context, name string) (*Product, error) {
	var product Product

	err := s.col.FindOne(
		ctx,
		bson.M{"name": name},
	).Decode(&product)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to find product by name in product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *Store) updateOne(ctx context.Context, productID primitive.ObjectID, fields bson.M) (*Product, error) {
	var product Product

	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *Store) deleteOne(ctx context.Context, productID primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	if res.DeletedCount == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}

// reserveStock decrements quantity by amount in one conditional update, so
// two racing reservations can never oversell: the filter only matches while
// quantity >= amount.
func (s *Store) reserveStock(ctx context.Context, productID primitive.ObjectID, amount int) error {
	if amount <= 0 {
		return servererrors.ErrInsufficientStock
	}

	res, err := s.col.UpdateOne(
		ctx,
		bson.M{
			"_id":      productID,
			"quantity": bson.M{"$gte": amount},
		},
		bson.M{"$inc": bson.M{"quantity": -amount}},
	)
	if err != nil {
		return fmt.Errorf(
			"failed to reserve stock in product store: %w",
			err,
		)
	}

	if res.MatchedCount == 0 {
		// distinguish a missing product from an oversell attempt
		if _, err := s.findByID(ctx, productID); err != nil {
			return err
		}

		return servererrors.ErrInsufficientStock
	}

	return nil
}

// releaseStock returns previously reserved quantity to the pool.
func (s *Store) releaseStock(ctx context.Context, productID primitive.ObjectID, amount int) error {
	if amount <= 0 {
		return nil
	}

	res, err := s.col.UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$inc": bson.M{"quantity": amount}},
	)
	if err != nil {
		return fmt.Errorf(
			"failed to release stock in product store: %w",
			err,
		)
	}

	if res.MatchedCount == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}

func buildFilter(queryItems *ListProductsQuery) bson.M {
	filter := bson.M{}

	if !queryItems.FilterOpts.ID.IsZero() {
		filter["_id"] = queryItems.FilterOpts.ID
	}

	if queryItems.FilterOpts.Category != "" {
		filter["category"] = queryItems.FilterOpts.Category
	}

	if queryItems.FilterOpts.Rating > 0 {
		filter["rating"] = queryItems.FilterOpts.Rating
	}

	if queryItems.FilterOpts.Search != "" {
		search := primitive.Regex{
			Pattern: regexp.QuoteMeta(queryItems.FilterOpts.Search),
			Options: "i",
		}

		filter["$or"] = bson.A{
			bson.M{"name": search},
			bson.M{"description": search},
		}
	}

	return filter
}

// sortField maps the wire sort key onto the stored field name. SortBy has
// already been validated against the whitelist.
func sortField(sortBy string) string {
	if sortBy == "createdAt" {
		return "created_at"
	}

	return sortBy
}
