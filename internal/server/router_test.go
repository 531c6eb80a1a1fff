package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bistro-boss/internal/auth"
	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
	"bistro-boss/internal/services/bookings"
	"bistro-boss/internal/services/carts"
	"bistro-boss/internal/services/menu"
	"bistro-boss/internal/services/payments"
	"bistro-boss/internal/services/reviews"
	"bistro-boss/internal/services/stats"
	"bistro-boss/internal/services/users"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, models.ErrNotFound
}

func newTestRouter(db Pinger) (*gin.Engine, *auth.Tokens) {
	gin.SetMode(gin.TestMode)
	log := logger.NewWithWriter("test", io.Discard, slog.LevelError)
	tokens := auth.NewTokens("secret", time.Hour)
	gate := auth.NewGate(noUsers{})

	h := Handlers{
		Auth:     auth.NewHandler(tokens, log),
		Users:    users.NewHandler(users.NewService(nil, log), log),
		Menu:     menu.NewHandler(nil, log),
		Reviews:  reviews.NewHandler(nil, log),
		Carts:    carts.NewHandler(nil, log),
		Payments: payments.NewHandler(payments.NewService(nil, nil, nil, "usd", log), log),
		Bookings: bookings.NewHandler(bookings.NewService(nil, gate, log), log),
		Stats:    stats.NewHandler(stats.NewService(nil), log),
	}
	return NewRouter(log, auth.NewMiddleware(tokens, gate), h, db), tokens
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	r, _ := newTestRouter(pinger{})
	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bistro is running", w.Body.String())
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(pinger{})
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "").Code)

	r, _ = newTestRouter(pinger{err: errors.New("no primary")})
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/health", "").Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(pinger{})
	id := "65f1a2b3c4d5e6f708091a2b"

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/admin/a@b.io"},
		{http.MethodPatch, "/users/admin/" + id},
		{http.MethodDelete, "/users/" + id},
		{http.MethodPost, "/menu"},
		{http.MethodPatch, "/menu/" + id},
		{http.MethodDelete, "/menu/" + id},
		{http.MethodGet, "/payments/a@b.io"},
		{http.MethodGet, "/admin-stats"},
		{http.MethodGet, "/order-stats"},
		{http.MethodGet, "/bookings/a@b.io"},
		{http.MethodGet, "/bookings"},
		{http.MethodPatch, "/booking/" + id},
		{http.MethodDelete, "/booking/" + id},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(r, rt.method, rt.path, "").Code)
		})
	}
}

func TestAdminRoutesForbidNonAdmins(t *testing.T) {
	r, tokens := newTestRouter(pinger{})
	token, err := tokens.Issue(map[string]interface{}{"email": "guest@bistro.io"})
	assert.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin-stats", token).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/users", token).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/payments/other@bistro.io", token).Code)
}
