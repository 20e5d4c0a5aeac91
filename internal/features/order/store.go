package order

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "orders"

type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		col: db.Collection(collectionName),
	}
}

func (s *Store) createOne(ctx context.Context, order *Order) (*Order, error) {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new order in order store: %w",
			err,
		)
	}

	order.ID = res.InsertedID.(primitive.ObjectID)

	return order, nil
}

func (s *Store) findAll(ctx context.Context) (orders []*Order, err error) {
	cursor, err := s.col.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "ordered_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all orders from order store: %w",
			err,
		)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf(
			"failed to decode orders from order store: %w",
			err,
		)
	}

	return orders, nil
}
