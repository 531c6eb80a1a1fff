package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

// CreateIntent handles POST /create-payment-intent
func (h *Handler) CreateIntent(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	resp, err := h.service.CreateIntent(c.Request.Context(), &req, web.RequestID(c))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, resp)
}

// Create handles POST /payments
func (h *Handler) Create(c *gin.Context) {
	var req models.PaymentRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), &req, web.RequestID(c))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}

// History handles GET /payments/:email
func (h *Handler) History(c *gin.Context) {
	payments, err := h.service.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, payments)
}
