package handler

import (
	"context"
	"errors"
	"net/http"

	"bingo-service/internal/account"
	"bingo-service/internal/apperr"
	"bingo-service/internal/auth/provider"
	"bingo-service/internal/auth/resolver"
	"bingo-service/internal/logger"
	"bingo-service/internal/metrics"
	"bingo-service/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionBinder is the session contract the handlers drive.
type SessionBinder interface {
	Bind(ctx context.Context, acc *account.Account) (session.Session, error)
	Resolve(ctx context.Context, sessionID string) (*account.Account, error)
	Unbind(ctx context.Context, sessionID string) error
}

type Handler struct {
	provider provider.OAuthProvider // nil when Twitch is not configured
	sessions SessionBinder
	resolver resolver.Resolver
	cookies  session.CookieOptions
}

func NewHandler(
	p provider.OAuthProvider,
	sessions SessionBinder,
	resolver resolver.Resolver,
	cookies session.CookieOptions,
) *Handler {
	return &Handler{
		provider: p,
		sessions: sessions,
		resolver: resolver,
		cookies:  cookies,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/oauth/login", h.login)
	r.GET("/oauth/callback", h.callback)
}

// RegisterProtectedRoutes mounts routes that need an authenticated group.
func (h *Handler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.GET("/me", h.Me)
}

// bindSession binds acc to a fresh session and drops the caller's old one.
func (h *Handler) bindSession(c *gin.Context, acc *account.Account) error {
	if old := session.ReadCookie(c.Request); old != "" {
		_ = h.sessions.Unbind(c.Request.Context(), old)
	}

	sess, err := h.sessions.Bind(c.Request.Context(), acc)
	if err != nil {
		return err
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, h.cookies)
	return nil
}

// currentAccount resolves the caller's session, nil when anonymous.
func (h *Handler) currentAccount(c *gin.Context) (*account.Account, error) {
	sid := session.ReadCookie(c.Request)
	if sid == "" {
		return nil, nil
	}
	return h.sessions.Resolve(c.Request.Context(), sid)
}

// fail maps a resolver error onto a response and counts the outcome.
func (h *Handler) fail(c *gin.Context, path string, err error) {
	var authErr *apperr.AuthError
	var validationErr *apperr.ValidationError

	switch {
	case errors.Is(err, apperr.ErrLinkConflict):
		metrics.ObserveAuth(path, "link_conflict")
		c.JSON(http.StatusConflict, gin.H{"error": "already linked to another account"})

	case errors.As(err, &authErr):
		metrics.ObserveAuth(path, "rejected")
		logger.Info("authentication rejected", map[string]any{
			"path":   path,
			"reason": authErr.Reason,
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

	case errors.As(err, &validationErr):
		metrics.ObserveAuth(path, "invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})

	default:
		metrics.ObserveAuth(path, "error")
		logger.Error("identity resolution failed", map[string]any{
			"path":  path,
			"error": err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) succeed(c *gin.Context, path string, acc *account.Account, status int, body gin.H) {
	if err := h.bindSession(c, acc); err != nil {
		logger.Error("failed to bind session", map[string]any{
			"user_id": acc.ID,
			"error":   err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	metrics.ObserveAuth(path, "ok")
	logger.Info("login success", map[string]any{
		"path":      path,
		"user_id":   acc.ID,
		"client_ip": c.ClientIP(),
	})
	c.JSON(status, body)
}

func (h *Handler) Logout(c *gin.Context) {
	// 1. Read session cookie (same pattern as auth middleware)
	if sid := session.ReadCookie(c.Request); sid != "" {
		// 2. Delete session from store (best-effort)
		if err := h.sessions.Unbind(c.Request.Context(), sid); err != nil {
			logger.Warn("session unbind failed", map[string]any{
				"error": err,
			})
		}
	}

	// 3. Clear cookie (must pass options)
	session.ClearCookie(c.Writer, h.cookies)

	// 4. Idempotent response
	c.Status(http.StatusNoContent)
}

type accountView struct {
	ID                string `json:"id"`
	Username          string `json:"username,omitempty"`
	Email             string `json:"email,omitempty"`
	TwitchDisplayName string `json:"twitch_display_name,omitempty"`
	Linked            bool   `json:"linked"`
	HasPassword       bool   `json:"has_password"`
}

func viewOf(acc *account.Account) accountView {
	return accountView{
		ID:                acc.ID,
		Username:          acc.Username,
		Email:             acc.Email,
		TwitchDisplayName: acc.ExternalDisplayName,
		Linked:            acc.Linked(),
		HasPassword:       acc.HasPassword(),
	}
}
