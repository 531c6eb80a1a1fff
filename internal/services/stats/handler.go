package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/web"
)

type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// UserStats handles GET /user-stats/:email
func (h *Handler) UserStats(c *gin.Context) {
	st, err := h.service.ForUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, st)
}

// AdminStats handles GET /admin-stats
func (h *Handler) AdminStats(c *gin.Context) {
	st, err := h.service.Admin(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, st)
}

// OrderStats handles GET /order-stats
func (h *Handler) OrderStats(c *gin.Context) {
	st, err := h.service.Orders(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, st)
}
