package carts

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
	"bistro-boss/internal/web"
)

type CartStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) (models.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type Handler struct {
	store  CartStore
	logger *logger.Logger
}

func NewHandler(store CartStore, log *logger.Logger) *Handler {
	return &Handler{store: store, logger: log}
}

// List handles GET /carts?email=
func (h *Handler) List(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		web.WriteError(c, models.ValidationError{Field: "email", Message: "query parameter is required"})
		return
	}

	items, err := h.store.ListByEmail(c.Request.Context(), email)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, items)
}

// Add handles POST /carts
func (h *Handler) Add(c *gin.Context) {
	var req models.CartItemRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.store.Insert(c.Request.Context(), req.ToCartItem())
	if err != nil {
		web.WriteError(c, err)
		return
	}

	h.logger.Debug("cart_item_added", "Cart item added", web.RequestID(c), map[string]interface{}{
		"email":   req.Email,
		"menu_id": req.MenuID,
	})
	web.WriteJSON(c, http.StatusOK, res)
}

// Remove handles DELETE /carts/:id
func (h *Handler) Remove(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}
