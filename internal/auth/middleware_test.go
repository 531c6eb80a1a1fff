package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro-boss/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if email == "broken@bistro.io" {
		return nil, errors.New("connection reset")
	}
	u, ok := f[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *Tokens) {
	t.Helper()
	tokens := NewTokens("secret", time.Hour)
	users := fakeUsers{
		"admin@bistro.io": {Email: "admin@bistro.io", Role: models.RoleAdmin},
		"guest@bistro.io": {Email: "guest@bistro.io", Role: models.RoleUser},
	}
	mw := NewMiddleware(tokens, NewGate(users))

	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/admin", mw.RequireToken(), mw.RequireAdmin(), ok)
	r.GET("/self/:email", mw.RequireToken(), mw.RequireSelf("email"), ok)
	r.GET("/query", mw.RequireToken(), mw.RequireSelf("email"), ok)
	return r, tokens
}

func do(r *gin.Engine, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestMiddleware_Access(t *testing.T) {
	r, tokens := newTestRouter(t)

	issue := func(email string) string {
		s, err := tokens.Issue(map[string]interface{}{"email": email})
		require.NoError(t, err)
		return s
	}
	admin := issue("admin@bistro.io")
	guest := issue("guest@bistro.io")
	stranger := issue("nobody@bistro.io")

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/admin", "", http.StatusUnauthorized},
		{"bad token", "/admin", "garbage", http.StatusUnauthorized},
		{"admin allowed", "/admin", admin, http.StatusNoContent},
		{"user forbidden", "/admin", guest, http.StatusForbidden},
		{"unknown user forbidden", "/admin", stranger, http.StatusForbidden},
		{"self path ok", "/self/guest@bistro.io", guest, http.StatusNoContent},
		{"self path mismatch", "/self/admin@bistro.io", guest, http.StatusForbidden},
		{"self query ok", "/query?email=guest@bistro.io", guest, http.StatusNoContent},
		{"self query missing", "/query", guest, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(r, tt.path, tt.token))
		})
	}
}

func TestGate_LookupFailureIsNotForbidden(t *testing.T) {
	gate := NewGate(fakeUsers{})

	err := gate.RequireAdmin(context.Background(), &Identity{Email: "broken@bistro.io"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrForbidden)
}
