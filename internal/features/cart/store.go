package cart

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

const collectionName = "carts"

type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		col: db.Collection(collectionName),
	}
}

// upsertLine merges quantity into the scope's line for the product, creating
// the line when none exists. One document write, so two racing adds for the
// same product can never produce two lines.
func (s *Store) upsertLine(ctx context.Context, scope string, productID primitive.ObjectID, quantity int, snapshot *LineSnapshot) (*CartLine, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if snapshot != nil {
		if snapshot.Name != "" {
			set["name"] = snapshot.Name
		}
		if snapshot.Price > 0 {
			set["price"] = snapshot.Price
		}
		if snapshot.Image != "" {
			set["image"] = snapshot.Image
		}
	}

	var line CartLine

	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{
			"scope":      scope,
			"product_id": productID,
		},
		bson.M{
			"$inc": bson.M{"quantity": quantity},
			"$set": set,
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&line)

	if err != nil {
		return nil, fmt.Errorf(
			"failed to upsert cart line in cart store: %w",
			err,
		)
	}

	return &line, nil
}

func (s *Store) findAll(ctx context.Context, scope string) (lines []*CartLine, err error) {
	cursor, err := s.col.Find(ctx, bson.M{"scope": scope})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get cart lines from cart store: %w",
			err,
		)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf(
			"failed to decode cart lines from cart store: %w",
			err,
		)
	}

	return lines, nil
}

func (s *Store) findByID(ctx context.Context, cartLineID primitive.ObjectID) (*CartLine, error) {
	var line CartLine

	err := s.col.FindOne(
		ctx,
		bson.M{"_id": cartLineID},
	).Decode(&line)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrCartLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to find cart line in cart store: %w",
			err,
		)
	}

	return &line, nil
}

func (s *Store) deleteOne(ctx context.Context, cartLineID primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": cartLineID})
	if err != nil {
		return fmt.Errorf(
			"failed to delete cart line in cart store: %w",
			err,
		)
	}

	if res.DeletedCount == 0 {
		return servererrors.ErrCartLineNotFound
	}

	return nil
}

func (s *Store) clear(ctx context.Context, scope string) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"scope": scope})
	if err != nil {
		return fmt.Errorf(
			"failed to clear cart in cart store: %w",
			err,
		)
	}

	return nil
}
