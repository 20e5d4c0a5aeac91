package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/handlerutils"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"github.com/devjunayed/online-nursery-website-server/internal/validate"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type servicer interface {
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, queryItems *ListProductsQuery) ([]*Product, int64, error)
	getProduct(ctx context.Context, productID primitive.ObjectID) (*Product, error)
	updateProduct(ctx context.Context, productID primitive.ObjectID, updates *UpdateProductRequest) (*Product, error)
	deleteProduct(ctx context.Context, productID primitive.ObjectID) error
}

type middleware interface {
	Handle(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/products",
		h.middleware.Handle(h.createProductHandler),
	)

	router.Get(
		"/products",
		h.middleware.Handle(h.getAllProductsHandler),
	)

	router.Get(
		"/products/{productID}",
		h.middleware.Handle(h.getProductHandler),
	)

	router.Patch(
		"/products/{productID}",
		h.middleware.Handle(h.updateProductHandler),
	)

	router.Delete(
		"/products/{productID}",
		h.middleware.Handle(h.deleteProductHandler),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
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

	product, err := h.service.createProduct(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"Product created successfully",
		product,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryItems, err := getQueryItems(r.URL.Query())
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLQueryParams.Error(),
			nil,
		)
	}

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	products, totalCount, err := h.service.getAllProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	return handlerutils.WriteListJSON(
		w,
		http.StatusOK,
		"All products retrieved successfully",
		products,
		int(totalCount),
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseObjectIDParam(r, "productID")
	if err != nil {
		return err
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		return mapProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product retrieved successfully",
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseObjectIDParam(r, "productID")
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
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

	product, err := h.service.updateProduct(ctx, productID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidRequestPayload):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidRequestPayload.Error(),
				nil,
			)

		default:
			return mapProductErr(err)
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product updated successfully",
		product,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseObjectIDParam(r, "productID")
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		return mapProductErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product deleted successfully",
		map[string]int{"deletedCount": 1},
	)
}

func mapProductErr(err error) error {
	if errors.Is(err, servererrors.ErrProductNotFound) {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	return err
}

func parseObjectIDParam(r *http.Request, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return primitive.NilObjectID, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	return id, nil
}

func getQueryItems(queryParams url.Values) (*ListProductsQuery, error) {
	query := new(ListProductsQuery)

	if idStr := queryParams.Get("id"); idStr != "" {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return nil, err
		}
		query.FilterOpts.ID = id
	}

	query.FilterOpts.Category = queryParams.Get("category")
	query.FilterOpts.Search = queryParams.Get("search")
	query.FilterOpts.Rating = stringToFloat64(
		0,
		queryParams.Get("rating"),
	)

	query.SortOpts.SortBy = queryParams.Get("sortBy")
	query.SortOpts.SortOrder = queryParams.Get("sortOrder")

	query.PageOpts.Page = stringToInt64(
		1,
		queryParams.Get("page"),
	)
	query.PageOpts.Limit = stringToInt64(
		20,
		queryParams.Get("limit"),
	)

	return query, nil
}

func stringToInt64(defaultValue int64, field string) int64 {
	num, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return defaultValue
	}

	return num
}

func stringToFloat64(defaultValue float64, field string) float64 {
	num, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return defaultValue
	}

	return num
}
