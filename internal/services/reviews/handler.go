package reviews

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
	"bistro-boss/internal/web"
)

type ReviewStore interface {
	List(ctx context.Context) ([]models.Review, error)
	Insert(ctx context.Context, r *models.Review) (models.InsertResult, error)
}

type Handler struct {
	store  ReviewStore
	logger *logger.Logger
}

func NewHandler(store ReviewStore, log *logger.Logger) *Handler {
	return &Handler{store: store, logger: log}
}

// List handles GET /reviews
func (h *Handler) List(c *gin.Context) {
	reviews, err := h.store.List(c.Request.Context())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, reviews)
}

// Create handles POST /review
func (h *Handler) Create(c *gin.Context) {
	var req models.ReviewRequest
	if err := web.BindJSON(c, &req); err != nil {
		web.WriteError(c, err)
		return
	}

	res, err := h.store.Insert(c.Request.Context(), req.ToReview())
	if err != nil {
		web.WriteError(c, err)
		return
	}
	web.WriteJSON(c, http.StatusOK, res)
}
