package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/auth"
	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
	"bistro-boss/internal/web"
)

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

// Create handles POST /bookings
func (h *Handler) Create(c *gin.Context) {
	var req models.BookingRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}

// ListMine handles GET /bookings/:email
func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ForUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, resp)
}

// ListAll handles GET /bookings
func (h *Handler) ListAll(c *gin.Context) {
	resp, err := h.service.All(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, resp)
}

// MarkDone handles PATCH /booking/:id
func (h *Handler) MarkDone(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.service.MarkDone(c.Request.Context(), id, web.RequestID(c))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}

// Cancel handles DELETE /booking/:id
func (h *Handler) Cancel(c *gin.Context) {
	id, err := web.PathID(c, "id")
	if err != nil {
		web.WriteError(c, err)
		return
	}
	caller, ok := auth.IdentityFrom(c)
	if !ok {
		web.WriteError(c, models.ErrUnauthorized)
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), id, caller.Email, web.RequestID(c))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}
