package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro-boss/internal/models"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestTokens_RoundTrip(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := NewTokens("secret", time.Hour, WithClock(c.now))

	signed, err := tokens.Issue(map[string]interface{}{"email": "guest@bistro.io", "name": "Guest"})
	require.NoError(t, err)

	id, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "guest@bistro.io", id.Email)
	assert.Equal(t, "Guest", id.Claims["name"])
	assert.NotContains(t, id.Claims, "exp")
	assert.NotContains(t, id.Claims, "iat")
}

func TestTokens_Expiry(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := NewTokens("secret", time.Hour, WithClock(c.now))

	signed, err := tokens.Issue(map[string]interface{}{"email": "guest@bistro.io"})
	require.NoError(t, err)

	c.t = c.t.Add(59 * time.Minute)
	_, err = tokens.Verify(signed)
	assert.NoError(t, err)

	c.t = c.t.Add(2 * time.Minute)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokens_RejectsForeignSecret(t *testing.T) {
	signed, err := NewTokens("one", time.Hour).Issue(map[string]interface{}{"email": "a@b.io"})
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokens_RejectsGarbage(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokens_IssueRequiresEmail(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Issue(map[string]interface{}{"name": "nobody"})

	var verr models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}
