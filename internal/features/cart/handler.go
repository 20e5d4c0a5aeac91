package cart

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/handlerutils"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"github.com/devjunayed/online-nursery-website-server/internal/validate"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type servicer interface {
	addToCart(ctx context.Context, productID primitive.ObjectID, quantity int, snapshot *LineSnapshot) (*CartLine, error)
	getCart(ctx context.Context) ([]*CartLine, error)
	removeLine(ctx context.Context, cartLineID primitive.ObjectID) error
}

type middleware interface {
	Handle(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(cartService servicer, middleware middleware) *handler {
	return &handler{
		service:    cartService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/cart",
		h.middleware.Handle(h.addToCartHandler),
	)

	router.Get(
		"/cart",
		h.middleware.Handle(h.getCartHandler),
	)

	router.Delete(
		"/cart/{cartLineID}",
		h.middleware.Handle(h.removeCartLineHandler),
	)
}

func (h *handler) addToCartHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *AddToCartRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	productID, err := primitive.ObjectIDFromHex(payload.ProductID)
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	line, err := h.service.addToCart(
		ctx,
		productID,
		payload.Quantity,
		&LineSnapshot{
			Name:  payload.Name,
			Price: payload.Price,
			Image: payload.Image,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInsufficientStock):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrInsufficientStock.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product added to cart successfully",
		line,
	)
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) error {
	lines, err := h.service.getCart(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Cart retrieved successfully",
		lines,
	)
}

func (h *handler) removeCartLineHandler(w http.ResponseWriter, r *http.Request) error {
	cartLineID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "cartLineID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := h.service.removeLine(r.Context(), cartLineID); err != nil {
		if errors.Is(err, servererrors.ErrCartLineNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCartLineNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Cart item removed successfully",
		map[string]int{"deletedCount": 1},
	)
}
