package handler

import (
	"net/http"

	"bingo-service/internal/metrics"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	acc, err := h.resolver.RegisterLocal(
		c.Request.Context(),
		req.Username,
		req.Email,
		req.Password,
	)
	if err != nil {
		h.fail(c, metrics.PathRegister, err)
		return
	}

	h.succeed(c, metrics.PathRegister, acc, http.StatusCreated, gin.H{
		"status":  "registered",
		"account": viewOf(acc),
	})
}
