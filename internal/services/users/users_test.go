package users

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memStore struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memStore) List(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User{}, m.users...), nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) Insert(_ context.Context, u *models.User) (models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return models.InsertResult{}, models.ErrConflict
		}
	}
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, *u)
	return models.InsertResult{Acknowledged: true, InsertedID: u.ID}, nil
}

func (m *memStore) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Role = role
			return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.UpdateResult{}, models.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{}, models.ErrNotFound
}

func newRouter(store *memStore) *gin.Engine {
	log := logger.NewWithWriter("test", io.Discard, slog.LevelError)
	h := NewHandler(NewService(store, log), log)

	r := gin.New()
	r.GET("/users", h.List)
	r.GET("/users/admin/:email", h.IsAdmin)
	r.POST("/users", h.Create)
	r.PATCH("/users/admin/:id", h.Promote)
	r.DELETE("/users/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_IsIdempotent(t *testing.T) {
	store := &memStore{}
	r := newRouter(store)
	body := `{"name":"Guest","email":"guest@bistro.io","role":"admin"}`

	first := serve(r, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), `"insertedId":"`)

	second := serve(r, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, second.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "user already exist", resp["message"])
	assert.Nil(t, resp["insertedId"])

	require.Len(t, store.users, 1)
	assert.Equal(t, models.RoleUser, store.users[0].Role)
}

func TestCreate_RejectsInvalidEmail(t *testing.T) {
	w := serve(newRouter(&memStore{}), http.MethodPost, "/users", `{"name":"x","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ConcurrentDuplicateIsNoop(t *testing.T) {
	store := &memStore{}
	log := logger.NewWithWriter("test", io.Discard, slog.LevelError)
	svc := NewService(store, log)

	var wg sync.WaitGroup
	created := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := svc.Register(context.Background(), &models.CreateUserRequest{Email: "race@bistro.io"}, "")
			assert.NoError(t, err)
			created <- ok
		}()
	}
	wg.Wait()
	close(created)

	n := 0
	for ok := range created {
		if ok {
			n++
		}
	}
	assert.Equal(t, 1, n)
	assert.Len(t, store.users, 1)
}

func TestPromoteAndIsAdmin(t *testing.T) {
	store := &memStore{}
	r := newRouter(store)
	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/users", `{"email":"cook@bistro.io"}`).Code)

	w := serve(r, http.MethodGet, "/users/admin/cook@bistro.io", "")
	assert.JSONEq(t, `{"admin":false}`, w.Body.String())

	id := store.users[0].ID.Hex()
	w = serve(r, http.MethodPatch, "/users/admin/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"modifiedCount":1`)

	w = serve(r, http.MethodGet, "/users/admin/cook@bistro.io", "")
	assert.JSONEq(t, `{"admin":true}`, w.Body.String())

	w = serve(r, http.MethodGet, "/users/admin/ghost@bistro.io", "")
	assert.JSONEq(t, `{"admin":false}`, w.Body.String())
}

func TestDelete(t *testing.T) {
	store := &memStore{}
	r := newRouter(store)
	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/users", `{"email":"gone@bistro.io"}`).Code)
	id := store.users[0].ID.Hex()

	assert.Equal(t, http.StatusOK, serve(r, http.MethodDelete, "/users/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/users/"+id, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodDelete, "/users/not-an-id", "").Code)
}
