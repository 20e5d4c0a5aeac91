package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/handlerutils"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"github.com/devjunayed/online-nursery-website-server/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	placeOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error)
	getAllOrders(ctx context.Context) ([]*Order, error)
}

type middleware interface {
	Handle(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/order",
		h.middleware.Handle(h.placeOrderHandler),
	)

	router.Get(
		"/order",
		h.middleware.Handle(h.getAllOrdersHandler),
	)
}

func (h *handler) placeOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *PlaceOrderRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidOrder.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrInvalidOrder.Error(),
			err,
		)
	}

	order, err := h.service.placeOrder(ctx, payload)
	if err != nil {
		var rejected *CheckoutRejectedError
		if errors.As(err, &rejected) {
			return servererrors.New(
				http.StatusConflict,
				rejected.Error(),
				rejected.Failures,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"Order created successfully",
		order,
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.service.getAllOrders(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"All orders retrieved successfully",
		orders,
	)
}
