package order

import (
	"context"
	"errors"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/eventengine"
	"github.com/devjunayed/online-nursery-website-server/internal/eventengine/event"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type storer interface {
	createOne(ctx context.Context, order *Order) (*Order, error)
	findAll(ctx context.Context) ([]*Order, error)
}

// stockKeeper is the product feature's reservation surface.
type stockKeeper interface {
	ReserveStock(ctx context.Context, productID primitive.ObjectID, amount int) error
	ReleaseStock(ctx context.Context, productID primitive.ObjectID, amount int) error
}

// cartClearer empties the shop's cart scope after a checkout.
type cartClearer interface {
	Clear(ctx context.Context) error
}

type Service struct {
	store       storer
	stock       stockKeeper
	cart        cartClearer
	eventEngine eventengine.RegisterPublisher
	logger      *zap.Logger
}

func NewService(store storer, stock stockKeeper, cart cartClearer, eventEngine eventengine.RegisterPublisher, logger *zap.Logger) *Service {
	// Register eventNames this service will publish, before anyone subscribes.
	eventEngine.RegisterEvents(event.OrderPlacedEventName)

	return &Service{
		store:       store,
		stock:       stock,
		cart:        cart,
		eventEngine: eventEngine,
		logger:      logger,
	}
}

type reservedLine struct {
	productID primitive.ObjectID
	quantity  int
}

// placeOrder checks out the request's line items all-or-nothing. Each line
// claims its quantity through an atomic reservation; if any line cannot be
// fulfilled, every reservation already made for this request is released and
// a CheckoutRejectedError lists the failed items. On success the order is
// written, the ENTIRE cart scope is cleared (ordered or not), and
// order.placed is published.
func (s *Service) placeOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error) {
	var (
		reserved []reservedLine
		failures []LineFailure
	)

	lines := make([]OrderLine, 0, len(req.Products))

	for _, item := range req.Products {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			failures = append(failures, LineFailure{
				ProductID: item.ProductID,
				Reason:    reasonNotFound,
			})
			continue
		}

		err = s.stock.ReserveStock(ctx, productID, item.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, servererrors.ErrProductNotFound):
				failures = append(failures, LineFailure{
					ProductID: item.ProductID,
					Reason:    reasonNotFound,
				})

			case errors.Is(err, servererrors.ErrInsufficientStock):
				failures = append(failures, LineFailure{
					ProductID: item.ProductID,
					Reason:    reasonInsufficientStock,
				})

			default:
				// store failure, not a business outcome: settle and bail
				s.releaseReserved(ctx, reserved)
				return nil, err
			}

			continue
		}

		reserved = append(reserved, reservedLine{
			productID: productID,
			quantity:  item.Quantity,
		})

		lines = append(lines, OrderLine{
			ProductID: productID,
			Quantity:  item.Quantity,
			Name:      item.Name,
			Price:     item.Price,
		})
	}

	if len(failures) > 0 {
		s.releaseReserved(ctx, reserved)
		return nil, &CheckoutRejectedError{Failures: failures}
	}

	order, err := s.store.createOne(ctx, &Order{
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		GrandTotal: req.GrandTotal, // trusted as supplied, not recomputed
		Products:   lines,
		OrderedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.releaseReserved(ctx, reserved)
		return nil, err
	}

	// the whole cart scope empties on checkout, ordered items or not
	if err := s.cart.Clear(ctx); err != nil {
		// the order exists and stock is decremented; failing the request
		// now would report the opposite of what happened
		s.logger.Error("failed to clear cart after checkout",
			zap.String("orderID", order.ID.Hex()),
			zap.Error(err),
		)
	}

	s.publishOrderPlaced(order)

	s.logger.Info("order placed",
		zap.String("orderID", order.ID.Hex()),
		zap.Float64("grandTotal", order.GrandTotal),
		zap.Int("lineItems", len(order.Products)),
	)

	return order, nil
}

func (s *Service) getAllOrders(ctx context.Context) ([]*Order, error) {
	return s.store.findAll(ctx)
}

func (s *Service) releaseReserved(ctx context.Context, reserved []reservedLine) {
	for _, line := range reserved {
		if err := s.stock.ReleaseStock(ctx, line.productID, line.quantity); err != nil {
			s.logger.Error("failed to release reserved stock",
				zap.String("productID", line.productID.Hex()),
				zap.Int("quantity", line.quantity),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) publishOrderPlaced(order *Order) {
	products := make([]event.OrderedProduct, 0, len(order.Products))
	for _, line := range order.Products {
		products = append(products, event.OrderedProduct{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	err := s.eventEngine.Publish(&event.Event{
		Name: event.OrderPlacedEventName,
		Payload: &event.OrderPlacedEvent{
			OrderID:    order.ID,
			GrandTotal: order.GrandTotal,
			Products:   products,
		},
	})
	if err != nil {
		s.logger.Warn("failed to publish order placed event",
			zap.String("orderID", order.ID.Hex()),
			zap.Error(err),
		)
	}
}
