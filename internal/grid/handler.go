package grid

import (
	"net/http"
	"time"

	"bingo-service/internal/apperr"
	"bingo-service/internal/logger"
	"bingo-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the grid endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/grid", h.get)
	r.PUT("/grid", h.put)
}

type gridResponse struct {
	Cells       []bool     `json:"cells"`
	LastUpdated *time.Time `json:"last_updated"`
}

type saveRequest struct {
	Cells []bool `json:"cells"`
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	g, err := h.store.Load(c.Request.Context(), userID)
	if err != nil {
		logger.Error("grid load failed", map[string]any{
			"user_id": userID,
			"error":   err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gridResponse{Cells: g.Cells}
	if !g.LastUpdated.IsZero() {
		resp.LastUpdated = &g.LastUpdated
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) put(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.store.Save(c.Request.Context(), userID, req.Cells)
	if apperr.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("grid save failed", map[string]any{
			"user_id": userID,
			"error":   err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}
