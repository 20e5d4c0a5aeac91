package cart

import (
	"context"

	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type storer interface {
	upsertLine(ctx context.Context, scope string, productID primitive.ObjectID, quantity int, snapshot *LineSnapshot) (*CartLine, error)
	findAll(ctx context.Context, scope string) ([]*CartLine, error)
	findByID(ctx context.Context, cartLineID primitive.ObjectID) (*CartLine, error)
	deleteOne(ctx context.Context, cartLineID primitive.ObjectID) error
	clear(ctx context.Context, scope string) error
}

// stockKeeper is the product feature's reservation surface.
type stockKeeper interface {
	ReserveStock(ctx context.Context, productID primitive.ObjectID, amount int) error
	ReleaseStock(ctx context.Context, productID primitive.ObjectID, amount int) error
}

type ServiceConfig struct {
	// Scope is the single cart every operation runs against.
	Scope string

	// RestoreStock re-credits product quantity when a cart line is removed.
	// Off by default: a removed line does not return its reservation.
	RestoreStock bool
}

type Service struct {
	store  storer
	stock  stockKeeper
	cfg    *ServiceConfig
	logger *zap.Logger
}

func NewService(store storer, stock stockKeeper, cfg *ServiceConfig, logger *zap.Logger) *Service {
	if cfg.Scope == "" {
		cfg.Scope = "default"
	}

	return &Service{
		store:  store,
		stock:  stock,
		cfg:    cfg,
		logger: logger,
	}
}

// addToCart reserves stock for the product and merges the quantity into the
// scope's cart line. The reservation is the gate: it only succeeds while the
// product holds at least quantity units, so a successful add has already
// claimed the stock it records.
func (s *Service) addToCart(ctx context.Context, productID primitive.ObjectID, quantity int, snapshot *LineSnapshot) (*CartLine, error) {
	if quantity <= 0 {
		return nil, servererrors.ErrInsufficientStock
	}

	if err := s.stock.ReserveStock(ctx, productID, quantity); err != nil {
		return nil, err
	}

	line, err := s.store.upsertLine(
		ctx,
		s.cfg.Scope,
		productID,
		quantity,
		snapshot,
	)
	if err != nil {
		// hand the reservation back rather than leaking it
		if relErr := s.stock.ReleaseStock(ctx, productID, quantity); relErr != nil {
			s.logger.Error("failed to release reservation after cart write failure",
				zap.String("productID", productID.Hex()),
				zap.Int("quantity", quantity),
				zap.Error(relErr),
			)
		}

		return nil, err
	}

	return line, nil
}

func (s *Service) getCart(ctx context.Context) ([]*CartLine, error) {
	return s.store.findAll(ctx, s.cfg.Scope)
}

// removeLine deletes a cart line. The line's reservation is only returned to
// the product when RestoreStock is on.
func (s *Service) removeLine(ctx context.Context, cartLineID primitive.ObjectID) error {
	if !s.cfg.RestoreStock {
		return s.store.deleteOne(ctx, cartLineID)
	}

	line, err := s.store.findByID(ctx, cartLineID)
	if err != nil {
		return err
	}

	if err := s.store.deleteOne(ctx, cartLineID); err != nil {
		return err
	}

	if err := s.stock.ReleaseStock(ctx, line.ProductID, line.Quantity); err != nil {
		// the line is gone either way; the reservation stays burned
		s.logger.Error("failed to restore stock after cart line removal",
			zap.String("productID", line.ProductID.Hex()),
			zap.Int("quantity", line.Quantity),
			zap.Error(err),
		)
	}

	return nil
}

// Clear empties the whole cart scope. Checkout calls this after an order is
// written; every line goes, ordered or not.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.clear(ctx, s.cfg.Scope)
}
