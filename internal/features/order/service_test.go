package order

import (
	"context"
	"errors"
	"testing"

	"github.com/devjunayed/online-nursery-website-server/internal/eventengine/event"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStore struct {
	orders    []*Order
	createErr error
}

func (f *fakeStore) createOne(_ context.Context, order *Order) (*Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)

	return order, nil
}

func (f *fakeStore) findAll(_ context.Context) ([]*Order, error) {
	return f.orders, nil
}

type fakeStock struct {
	quantities map[primitive.ObjectID]int
}

func (f *fakeStock) ReserveStock(_ context.Context, productID primitive.ObjectID, amount int) error {
	quantity, ok := f.quantities[productID]
	if !ok {
		return servererrors.ErrProductNotFound
	}

	if quantity < amount {
		return servererrors.ErrInsufficientStock
	}

	f.quantities[productID] = quantity - amount

	return nil
}

func (f *fakeStock) ReleaseStock(_ context.Context, productID primitive.ObjectID, amount int) error {
	if _, ok := f.quantities[productID]; !ok {
		return servererrors.ErrProductNotFound
	}

	f.quantities[productID] += amount

	return nil
}

type fakeCart struct {
	lines    []primitive.ObjectID
	clearErr error
}

func (f *fakeCart) Clear(_ context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}

	f.lines = nil

	return nil
}

type fakeEngine struct {
	registered []event.EventName
	published  []*event.Event
}

func (f *fakeEngine) RegisterEvents(eventNames ...event.EventName) {
	f.registered = append(f.registered, eventNames...)
}

func (f *fakeEngine) Publish(ev *event.Event) error {
	f.published = append(f.published, ev)
	return nil
}

func TestPlaceOrder_decrementsStockAndClearsCart(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	unrelatedProductID := primitive.NewObjectID()

	store := &fakeStore{}
	stock := &fakeStock{quantities: map[primitive.ObjectID]int{productID: 10}}

	// the cart holds a line for a product the order never mentions
	cart := &fakeCart{lines: []primitive.ObjectID{productID, unrelatedProductID}}
	engine := &fakeEngine{}

	svc := NewService(store, stock, cart, engine, zap.NewNop())
	require.Contains(t, engine.registered, event.OrderPlacedEventName)

	order, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		Name:       "Jess",
		Phone:      "01700000000",
		Address:    "Dhaka",
		GrandTotal: 120,
		Products: []OrderLineRequest{
			{ProductID: productID.Hex(), Quantity: 4, Name: "Monstera", Price: 30},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, stock.quantities[productID])
	assert.False(t, order.ID.IsZero())
	assert.Equal(t, 120.0, order.GrandTotal)
	assert.Len(t, store.orders, 1)
	assert.Empty(t, cart.lines, "checkout must empty the whole cart, unordered lines included")

	require.Len(t, engine.published, 1)
	assert.Equal(t, event.OrderPlacedEventName, engine.published[0].Name)

	payload, ok := engine.published[0].Payload.(*event.OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, order.ID, payload.OrderID)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, productID, payload.Products[0].ProductID)
	assert.Equal(t, 4, payload.Products[0].Quantity)
}

func TestPlaceOrder_allOrNothingOnInsufficientStock(t *testing.T) {
	ctx := context.Background()
	firstID := primitive.NewObjectID()
	secondID := primitive.NewObjectID()

	store := &fakeStore{}
	stock := &fakeStock{quantities: map[primitive.ObjectID]int{
		firstID:  10,
		secondID: 1,
	}}
	cart := &fakeCart{lines: []primitive.ObjectID{firstID}}

	svc := NewService(store, stock, cart, &fakeEngine{}, zap.NewNop())

	_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		Name:       "Jess",
		Phone:      "01700000000",
		Address:    "Dhaka",
		GrandTotal: 50,
		Products: []OrderLineRequest{
			{ProductID: firstID.Hex(), Quantity: 2},
			{ProductID: secondID.Hex(), Quantity: 5},
		},
	})

	var rejected *CheckoutRejectedError
	require.ErrorAs(t, err, &rejected)
	require.Len(t, rejected.Failures, 1)
	assert.Equal(t, secondID.Hex(), rejected.Failures[0].ProductID)
	assert.Equal(t, "insufficient stock", rejected.Failures[0].Reason)

	// the first line's reservation must have been handed back
	assert.Equal(t, 10, stock.quantities[firstID])
	assert.Equal(t, 1, stock.quantities[secondID])

	assert.Empty(t, store.orders)
	assert.Len(t, cart.lines, 1, "a rejected checkout must leave the cart alone")
}

func TestPlaceOrder_unknownProduct(t *testing.T) {
	ctx := context.Background()
	knownID := primitive.NewObjectID()
	unknownID := primitive.NewObjectID()

	store := &fakeStore{}
	stock := &fakeStock{quantities: map[primitive.ObjectID]int{knownID: 10}}

	svc := NewService(store, stock, &fakeCart{}, &fakeEngine{}, zap.NewNop())

	_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		Name:       "Jess",
		Phone:      "01700000000",
		Address:    "Dhaka",
		GrandTotal: 30,
		Products: []OrderLineRequest{
			{ProductID: knownID.Hex(), Quantity: 1},
			{ProductID: unknownID.Hex(), Quantity: 1},
			{ProductID: "not-a-hex-id", Quantity: 1},
		},
	})

	var rejected *CheckoutRejectedError
	require.ErrorAs(t, err, &rejected)
	require.Len(t, rejected.Failures, 2)
	assert.Equal(t, "not found", rejected.Failures[0].Reason)
	assert.Equal(t, "not found", rejected.Failures[1].Reason)

	assert.Equal(t, 10, stock.quantities[knownID])
	assert.Empty(t, store.orders)
}

func TestPlaceOrder_storeFailureReleasesReservations(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()

	store := &fakeStore{createErr: errors.New("write failed")}
	stock := &fakeStock{quantities: map[primitive.ObjectID]int{productID: 10}}
	cart := &fakeCart{lines: []primitive.ObjectID{productID}}

	svc := NewService(store, stock, cart, &fakeEngine{}, zap.NewNop())

	_, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		Name:       "Jess",
		Phone:      "01700000000",
		Address:    "Dhaka",
		GrandTotal: 30,
		Products: []OrderLineRequest{
			{ProductID: productID.Hex(), Quantity: 3},
		},
	})
	require.Error(t, err)

	var rejected *CheckoutRejectedError
	assert.False(t, errors.As(err, &rejected), "a store failure is not a checkout rejection")

	assert.Equal(t, 10, stock.quantities[productID])
	assert.Len(t, cart.lines, 1)
}

func TestPlaceOrder_cartClearFailureDoesNotFailTheOrder(t *testing.T) {
	ctx := context.Background()
	productID := primitive.NewObjectID()

	store := &fakeStore{}
	stock := &fakeStock{quantities: map[primitive.ObjectID]int{productID: 10}}
	cart := &fakeCart{clearErr: errors.New("clear failed")}

	svc := NewService(store, stock, cart, &fakeEngine{}, zap.NewNop())

	order, err := svc.placeOrder(ctx, &PlaceOrderRequest{
		Name:       "Jess",
		Phone:      "01700000000",
		Address:    "Dhaka",
		GrandTotal: 30,
		Products: []OrderLineRequest{
			{ProductID: productID.Hex(), Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Len(t, store.orders, 1)
	assert.Equal(t, 7, stock.quantities[productID])
	assert.False(t, order.ID.IsZero())
}

func TestGetAllOrders(t *testing.T) {
	store := &fakeStore{orders: []*Order{
		{ID: primitive.NewObjectID(), Name: "Jess"},
	}}

	svc := NewService(store, &fakeStock{}, &fakeCart{}, &fakeEngine{}, zap.NewNop())

	orders, err := svc.getAllOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
