package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devjunayed/online-nursery-website-server/internal/middlewares"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubService struct {
	line    *CartLine
	lines   []*CartLine
	addErr  error
	remErr  error
	getErr  error
	removed primitive.ObjectID
}

func (s *stubService) addToCart(_ context.Context, _ primitive.ObjectID, _ int, _ *LineSnapshot) (*CartLine, error) {
	return s.line, s.addErr
}

func (s *stubService) getCart(_ context.Context) ([]*CartLine, error) {
	return s.lines, s.getErr
}

func (s *stubService) removeLine(_ context.Context, cartLineID primitive.ObjectID) error {
	s.removed = cartLineID
	return s.remErr
}

func newTestRouter(t *testing.T, svc *stubService) *chi.Mux {
	t.Helper()

	router := chi.NewRouter()
	NewHandler(svc, middlewares.NewMiddleware(zap.NewNop())).RegisterRoutes(router)

	return router
}

func doJSON(t *testing.T, router *chi.Mux, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))

	return rec, envelope
}

func TestAddToCartHandler(t *testing.T) {
	productID := primitive.NewObjectID()
	svc := &stubService{
		line: &CartLine{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Quantity:  3,
		},
	}
	router := newTestRouter(t, svc)

	body := fmt.Sprintf(`{"_id":%q,"quantity":3,"name":"Monstera","price":30}`, productID.Hex())
	rec, envelope := doJSON(t, router, http.MethodPost, "/cart", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Product added to cart successfully", envelope["message"])
}

func TestAddToCartHandler_malformedBody(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec, envelope := doJSON(t, router, http.MethodPost, "/cart", `{"_id":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestAddToCartHandler_missingProductID(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec, envelope := doJSON(t, router, http.MethodPost, "/cart", `{"quantity":2}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestAddToCartHandler_statusMapping(t *testing.T) {
	productID := primitive.NewObjectID()
	body := fmt.Sprintf(`{"_id":%q,"quantity":3}`, productID.Hex())

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"unknown product", servererrors.ErrProductNotFound, http.StatusNotFound},
		{"insufficient stock", servererrors.ErrInsufficientStock, http.StatusConflict},
		{"store failure", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubService{addErr: tt.serviceErr})

			rec, envelope := doJSON(t, router, http.MethodPost, "/cart", body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, false, envelope["success"])
		})
	}
}

func TestGetCartHandler_emptyCart(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec, envelope := doJSON(t, router, http.MethodGet, "/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "No data available", envelope["message"])
}

func TestGetCartHandler(t *testing.T) {
	svc := &stubService{
		lines: []*CartLine{
			{ID: primitive.NewObjectID(), Quantity: 2},
		},
	}
	router := newTestRouter(t, svc)

	rec, envelope := doJSON(t, router, http.MethodGet, "/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Cart retrieved successfully", envelope["message"])
}

func TestRemoveCartLineHandler(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(t, svc)

	lineID := primitive.NewObjectID()
	rec, envelope := doJSON(t, router, http.MethodDelete, "/cart/"+lineID.Hex(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, lineID, svc.removed)

	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(1), data["deletedCount"])
}

func TestRemoveCartLineHandler_badID(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec, envelope := doJSON(t, router, http.MethodDelete, "/cart/not-a-hex-id", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestRemoveCartLineHandler_missingLine(t *testing.T) {
	router := newTestRouter(t, &stubService{remErr: servererrors.ErrCartLineNotFound})

	rec, envelope := doJSON(t, router, http.MethodDelete, "/cart/"+primitive.NewObjectID().Hex(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, envelope["success"])
}
