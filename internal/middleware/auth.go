package middleware

import (
	"context"
	"net/http"

	"bingo-service/internal/account"
	"bingo-service/internal/logger"
	"bingo-service/internal/session"
)

// unexported, collision-proof context keys
type userIDContextKeyType struct{}
type accountContextKeyType struct{}

var (
	userIDKey  = userIDContextKeyType{}
	accountKey = accountContextKeyType{}
)

// UserIDFromContext extracts the authenticated account id from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// AccountFromContext extracts the authenticated account from context.
func AccountFromContext(ctx context.Context) (*account.Account, bool) {
	acc, ok := ctx.Value(accountKey).(*account.Account)
	return acc, ok
}

// WithAccount attaches acc to ctx the same way RequireAuth does.
func WithAccount(ctx context.Context, acc *account.Account) context.Context {
	ctx = context.WithValue(ctx, accountKey, acc)
	return context.WithValue(ctx, userIDKey, acc.ID)
}

// SessionResolver maps a session id to its bound account, or nil.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*account.Account, error)
}

type AuthMiddleware struct {
	Sessions SessionResolver
}

func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		sessionID := session.ReadCookie(r)
		if sessionID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Resolve; expired or stale sessions come back nil
		acc, err := a.Sessions.Resolve(r.Context(), sessionID)
		if err != nil {
			logger.Error("session resolve failed", map[string]any{
				"error": err,
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if acc == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Continue with the account attached
		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
	})
}
