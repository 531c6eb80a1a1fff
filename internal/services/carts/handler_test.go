package carts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

type memCarts struct {
	items []models.CartItem
}

func (m *memCarts) ListByEmail(_ context.Context, email string) ([]models.CartItem, error) {
	out := []models.CartItem{}
	for _, it := range m.items {
		if it.Email == email {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memCarts) Insert(_ context.Context, it *models.CartItem) (models.InsertResult, error) {
	it.ID = primitive.NewObjectID()
	m.items = append(m.items, *it)
	return models.InsertResult{Acknowledged: true, InsertedID: it.ID}, nil
}

func (m *memCarts) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{}, models.ErrNotFound
}

func newRouter(store CartStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, logger.NewWithWriter("test", io.Discard, slog.LevelError))
	r := gin.New()
	r.GET("/carts", h.List)
	r.POST("/carts", h.Add)
	r.DELETE("/carts/:id", h.Remove)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCarts_ScopedByEmail(t *testing.T) {
	store := &memCarts{}
	r := newRouter(store)

	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/carts", `{"menuId":"m1","email":"a@bistro.io","name":"Soup","price":5}`).Code)
	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/carts", `{"menuId":"m2","email":"b@bistro.io","name":"Cake","price":7}`).Code)

	w := serve(r, http.MethodGet, "/carts?email=a@bistro.io", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Soup", items[0].Name)
}

func TestCarts_RequiresEmail(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(newRouter(&memCarts{}), http.MethodGet, "/carts", "").Code)
}

func TestCarts_Remove(t *testing.T) {
	store := &memCarts{}
	r := newRouter(store)
	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/carts", `{"menuId":"m1","email":"a@bistro.io","price":5}`).Code)
	id := store.items[0].ID.Hex()

	w := serve(r, http.MethodDelete, "/carts/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/carts/"+id, "").Code)
}
