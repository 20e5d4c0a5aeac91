package product

import (
	"context"
	"sync"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/eventengine"
	"github.com/devjunayed/online-nursery-website-server/internal/eventengine/event"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_events.product"

type servicerEvents interface {
	getProduct(ctx context.Context, productID primitive.ObjectID) (*Product, error)
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Service       servicerEvents
	Logger        *zap.Logger

	// LowStockThreshold is the remaining quantity at or below which a
	// just-ordered product gets flagged.
	LowStockThreshold int
	AddressChSize     uint16
}

// handlerEvents watches checkouts and flags products running low, so
// restocking does not depend on someone eyeballing the catalog.
type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil || cfg.Logger == nil {
		panic("product handler_events: missing required config")
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.addSubscriptions()

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	h.Logger.Info("event handler is listening",
		zap.String("subscriber", string(subscriberName)),
	)

	// a for-select is not needed here: the event engine closes addressCh on
	// shutdown after draining
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderPlacedEvent:
			h.orderPlacedEventHandler(ne)

		default:
			h.Logger.Warn("received unknown event type",
				zap.String("subscriber", string(subscriberName)),
				zap.Any("event", ne),
			)
		}
	}

	h.Logger.Info("event handler shut down",
		zap.String("subscriber", string(subscriberName)),
	)
}

func (h *handlerEvents) orderPlacedEventHandler(newEvent *event.OrderPlacedEvent) {
	ctx, cancel := context.WithTimeout(
		context.Background(),
		(10 * time.Second),
	)
	defer cancel()

	for _, ordered := range newEvent.Products {
		product, err := h.Service.getProduct(ctx, ordered.ProductID)
		if err != nil {
			h.Logger.Error("failed to check stock after order",
				zap.String("orderID", newEvent.OrderID.Hex()),
				zap.String("productID", ordered.ProductID.Hex()),
				zap.Error(err),
			)
			continue
		}

		if product.Quantity <= h.LowStockThreshold {
			h.Logger.Warn("product stock is running low",
				zap.String("productID", product.ID.Hex()),
				zap.String("name", product.Name),
				zap.Int("remaining", product.Quantity),
				zap.Int("threshold", h.LowStockThreshold),
			)
		}
	}
}

// addSubscriptions subscribes this handler to every event it consumes. Add
// new events to the subscribeToEventNames array.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [1]event.EventName{
		event.OrderPlacedEventName,
	}

	for _, eventName := range subscribeToEventNames {
		err := h.EventEngine.Subscribe(
			eventName,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			h.Logger.Fatal("failed to subscribe to event",
				zap.String("subscriber", string(subscriberName)),
				zap.String("event", string(eventName)),
				zap.Error(err),
			)
		}
	}
}
