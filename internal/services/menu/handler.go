package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
	"bistro-boss/internal/web"
)

// Handler serves the public menu and its admin maintenance routes
type Handler struct {
	store  MenuStore
	logger *logger.Logger
}

func NewHandler(store MenuStore, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: log,
	}
}

// List handles GET /menu
func (h *Handler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, items)
}

// Get handles GET /menu/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}

	item, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, item)
}

// Create handles POST /menu
func (h *Handler) Create(c *gin.Context) {
	var req models.MenuItemRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.store.Insert(c.Request.Context(), req.ToMenuItem())
	if err != nil {
		web.WriteError(c, err)
		return
	}

	h.logger.Info("menu_item_created", "Menu item created", web.RequestID(c), map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
	})
	web.WriteJSON(c, http.StatusOK, res)
}

// Update handles PATCH /menu/:id; only the fields present in the body change.
func (h *Handler) Update(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}

	var patch models.MenuItemPatch
	if err := web.BindJSON(c, &patch); err != nil {
		web.WriteError(c, err)
		return
	}
	if err := patch.Validate(); err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.store.Update(c.Request.Context(), id, patch.Fields())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}

// Delete handles DELETE /menu/:id
func (h *Handler) Delete(c *gin.Context) {
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

	h.logger.Info("menu_item_deleted", "Menu item deleted", web.RequestID(c), map[string]interface{}{
		"menu_id": id.Hex(),
	})
	web.WriteJSON(c, http.StatusOK, res)
}
