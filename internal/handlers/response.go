package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InvalidRequestMessage is returned for bodies that fail to bind.
const InvalidRequestMessage = "invalid request"

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// logAndRespondError logs the real cause and sends only message to the client.
func (h *AuthHandler) logAndRespondError(c *gin.Context, status int, err error, message string) {
	h.logger.ErrorContext(c.Request.Context(), message, "error", err, "path", c.FullPath())
	respondError(c, status, message)
}

// respondInvalidRequest hides binder and validator detail from the client.
func (h *AuthHandler) respondInvalidRequest(c *gin.Context, err error) {
	h.logger.InfoContext(c.Request.Context(), "request rejected", "error", err, "path", c.FullPath())
	respondError(c, http.StatusBadRequest, InvalidRequestMessage)
}
