package handler

import (
	"net/http"

	"bingo-service/internal/metrics"
	"bingo-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Login    string `json:"login"` // username or email
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	acc, err := h.resolver.LoginLocal(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.fail(c, metrics.PathLocalLogin, err)
		return
	}

	h.succeed(c, metrics.PathLocalLogin, acc, http.StatusOK, gin.H{
		"status":  "logged_in",
		"account": viewOf(acc),
	})
}

// Me must run behind middleware.GinRequireAuth.
func (h *Handler) Me(c *gin.Context) {
	acc, ok := middleware.AccountFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, viewOf(acc))
}
