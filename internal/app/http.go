package app

import (
	"context"
	"net/http"
	"time"

	"bingo-service/internal/account"
	"bingo-service/internal/auth/credentials"
	"bingo-service/internal/auth/handler"
	"bingo-service/internal/auth/provider"
	"bingo-service/internal/auth/provider/twitch"
	"bingo-service/internal/auth/resolver"
	"bingo-service/internal/config"
	"bingo-service/internal/grid"
	"bingo-service/internal/logger"
	"bingo-service/internal/metrics"
	"bingo-service/internal/middleware"
	"bingo-service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var oauthProvider provider.OAuthProvider
	if cfg.TwitchEnabled() {
		p, err := twitch.New(ctx, cfg.TwitchClientID, cfg.TwitchClientSecret, cfg.TwitchRedirectURL)
		if err != nil {
			_ = infra.Close()
			return nil, nil, err
		}
		oauthProvider = p
	} else {
		logger.Warn("twitch oauth not configured, provider routes disabled", nil)
	}

	router, err := newRouter(Deps{
		Accounts:     account.NewSQLStore(infra.DB),
		Grids:        grid.NewSQLStore(infra.DB),
		Sessions:     infra.Sessions,
		Hasher:       credentials.NewHasher(cfg.PasswordHashConcurrency),
		Provider:     oauthProvider,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
	})
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	return router, infra.Close, nil
}

// Deps are the constructed collaborators the router is built from.
type Deps struct {
	Accounts     account.Store
	Grids        grid.Store
	Sessions     session.Store
	Hasher       resolver.PasswordHasher
	Provider     provider.OAuthProvider // optional
	SessionTTL   time.Duration
	CookieSecure bool
	Registerer   prometheus.Registerer
	Gatherer     prometheus.Gatherer
}

func newRouter(d Deps) (*gin.Engine, error) {
	if err := metrics.Register(d.Registerer); err != nil {
		return nil, err
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	binder := session.NewBinder(d.Sessions, d.Accounts, d.SessionTTL)
	identityResolver := resolver.NewStoreResolver(d.Accounts, d.Hasher)

	authHandler := handler.NewHandler(
		d.Provider,
		binder,
		identityResolver,
		session.CookieOptions{
			Secure:   d.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		},
	)
	gridHandler := grid.NewHandler(d.Grids)
	authMiddleware := middleware.NewAuthMiddleware(binder)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), metrics.Instrument())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	authHandler.RegisterProtectedRoutes(api)
	gridHandler.RegisterRoutes(api)

	return router, nil
}
