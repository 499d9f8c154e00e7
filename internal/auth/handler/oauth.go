package handler

import (
	"net/http"

	"bingo-service/internal/auth"
	"bingo-service/internal/logger"
	"bingo-service/internal/metrics"

	"github.com/gin-gonic/gin"
)

func (h *Handler) login(c *gin.Context) {
	if h.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "oauth provider not configured",
		})
		return
	}

	state := h.generateState(c)
	_, codeChallenge := h.generatePKCE(c)

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state, codeChallenge))
}

// callback finishes the provider handshake. With a bound session the
// identity is linked onto that account, otherwise it logs in.
func (h *Handler) callback(c *gin.Context) {
	if h.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "oauth provider not configured",
		})
		return
	}

	if !h.validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	// CASE 1: provider reported an error (user denied consent, etc.)
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"error": errParam,
			"desc":  c.Query("error_description"),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	// CASE 2: normal callback
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing code",
		})
		return
	}

	codeVerifier := h.takePKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	identity, err := h.provider.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		logger.Warn("oauth code exchange failed", map[string]any{
			"error": err,
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	h.completeExternal(c, identity)
}

func (h *Handler) completeExternal(c *gin.Context, identity *auth.Identity) {
	current, err := h.currentAccount(c)
	if err != nil {
		logger.Error("session resolve failed", map[string]any{
			"error": err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	path := metrics.PathProviderLogin
	status := "authenticated"
	if current != nil {
		path = metrics.PathProviderLink
		status = "linked"
	}

	acc, err := h.resolver.ResolveExternal(c.Request.Context(), identity, current)
	if err != nil {
		h.fail(c, path, err)
		return
	}

	h.succeed(c, path, acc, http.StatusOK, gin.H{
		"status":  status,
		"account": viewOf(acc),
	})
}
