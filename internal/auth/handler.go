package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/web"
)

// Handler serves POST /jwt
type Handler struct {
	tokens *Tokens
	logger *logger.Logger
}

func NewHandler(tokens *Tokens, log *logger.Logger) *Handler {
	return &Handler{tokens: tokens, logger: log}
}

func (h *Handler) IssueToken(c *gin.Context) {
	var payload map[string]interface{}
	if err := web.BindJSON(c, &payload); err != nil {
		web.WriteError(c, err)
		return
	}

	token, err := h.tokens.Issue(payload)
	if err != nil {
		web.WriteError(c, err)
		return
	}

	h.logger.Debug("token_issued", "Identity token issued", web.RequestID(c), map[string]interface{}{
		"email": payload["email"],
	})
	web.WriteJSON(c, http.StatusOK, gin.H{"token": token})
}
