package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
	"bistro-boss/internal/web"
)

// Handler handles HTTP requests for the users resource
type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// List handles GET /users
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, users)
}

// IsAdmin handles GET /users/admin/:email
func (h *Handler) IsAdmin(c *gin.Context) {
	admin, err := h.service.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, gin.H{"admin": admin})
}

// Create handles POST /users
func (h *Handler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	res, created, err := h.service.Register(c.Request.Context(), &req, web.RequestID(c))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	if !created {
		web.WriteJSON(c, http.StatusOK, gin.H{"message": "user already exist", "insertedId": nil})
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}

// Promote handles PATCH /users/admin/:id
func (h *Handler) Promote(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.service.Promote(c.Request.Context(), id, web.RequestID(c))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}

// Delete handles DELETE /users/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}
