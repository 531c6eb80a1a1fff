package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/models"
	"bistro-boss/internal/web"
)

const identityKey = "auth.identity"

// Middleware adapts token verification and the role gate to gin routes
type Middleware struct {
	tokens *Tokens
	gate   *Gate
}

func NewMiddleware(tokens *Tokens, gate *Gate) *Middleware {
	return &Middleware{tokens: tokens, gate: gate}
}

// RequireToken rejects requests without a valid bearer token and stores the identity
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			web.WriteError(c, models.ErrUnauthorized)
			return
		}

		id, err := m.tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			web.WriteError(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin must run after RequireToken
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		if err := m.gate.RequireAdmin(c.Request.Context(), id); err != nil {
			web.WriteError(c, err)
			return
		}
		c.Next()
	}
}

// RequireSelf compares the token email with the named path parameter or, when absent,
// the query parameter of the same name.
func (m *Middleware) RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param(param)
		if email == "" {
			email = c.Query(param)
		}
		id, _ := IdentityFrom(c)
		if err := RequireSelf(id, email); err != nil {
			web.WriteError(c, err)
			return
		}
		c.Next()
	}
}

// Gate exposes the role gate to handlers that authorize per resource.
func (m *Middleware) Gate() *Gate {
	return m.gate
}

// IdentityFrom returns the identity stored by RequireToken
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok
}
