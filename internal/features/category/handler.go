package category

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
	createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error)
	getAllCategories(ctx context.Context) ([]*Category, error)
	updateCategory(ctx context.Context, categoryID primitive.ObjectID, updates *UpdateCategoryRequest) (*Category, error)
	deleteCategory(ctx context.Context, categoryID primitive.ObjectID) error
}

type middleware interface {
	Handle(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(categoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    categoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/category",
		h.middleware.Handle(h.createCategoryHandler),
	)

	router.Get(
		"/category",
		h.middleware.Handle(h.getAllCategoriesHandler),
	)

	router.Patch(
		"/category/{categoryID}",
		h.middleware.Handle(h.updateCategoryHandler),
	)

	router.Delete(
		"/category/{categoryID}",
		h.middleware.Handle(h.deleteCategoryHandler),
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCategoryRequest
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

	category, err := h.service.createCategory(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"Category created successfully",
		category,
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.getAllCategories(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"All categories retrieved successfully",
		categories,
	)
}

func (h *handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	var payload *UpdateCategoryRequest
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

	category, err := h.service.updateCategory(ctx, categoryID, payload)
	if err != nil {
		return mapCategoryErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Category updated successfully",
		category,
	)
}

func (h *handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := h.service.deleteCategory(r.Context(), categoryID); err != nil {
		return mapCategoryErr(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Category deleted successfully",
		map[string]int{"deletedCount": 1},
	)
}

func mapCategoryErr(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrCategoryNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrInvalidRequestPayload):
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)

	default:
		return err
	}
}
