package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/models"
)

// RequestIDKey is the gin context key holding the request correlation id
const RequestIDKey = "request_id"

// RequestID returns the id assigned by the logging middleware
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// WriteJSON writes v with the given status
func WriteJSON(c *gin.Context, status int, v interface{}) {
	c.JSON(status, v)
}

// WriteError maps err onto the HTTP error taxonomy and aborts the chain. The error is
// attached to the context so the logging middleware records server failures.
func WriteError(c *gin.Context, err error) {
	status, message := StatusFor(err)
	_ = c.Error(err)

	c.AbortWithStatusJSON(status, gin.H{
		"message":    message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": RequestID(c),
	})
}

// StatusFor returns the status code and client-facing message for err
func StatusFor(err error) (int, string) {
	var verr models.ValidationError
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, models.ErrUnauthorized.Error()
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, models.ErrForbidden.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, models.ErrNotFound.Error()
	case errors.Is(err, models.ErrInvalidID):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// BindJSON decodes the request body into dst, reporting decode and binding-tag
// failures as validation errors.
func BindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return models.ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}

// PathID parses the named path parameter as an object id
func PathID(c *gin.Context, name string) (primitive.ObjectID, error) {
	return models.ParseID(c.Param(name))
}
