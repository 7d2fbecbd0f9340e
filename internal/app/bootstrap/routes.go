// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	campaigninfluencersfeature "github.com/dalemusser/affiliatehub/internal/app/features/campaigninfluencers"
	campaignsfeature "github.com/dalemusser/affiliatehub/internal/app/features/campaigns"
	errorsfeature "github.com/dalemusser/affiliatehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/affiliatehub/internal/app/features/health"
	influencersfeature "github.com/dalemusser/affiliatehub/internal/app/features/influencers"
	loginfeature "github.com/dalemusser/affiliatehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/affiliatehub/internal/app/features/logout"
	registerfeature "github.com/dalemusser/affiliatehub/internal/app/features/register"
	usersfeature "github.com/dalemusser/affiliatehub/internal/app/features/users"
	userstore "github.com/dalemusser/affiliatehub/internal/app/store/users"
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/app/system/metrics"
	"github.com/dalemusser/affiliatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/affiliatehub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router carries request ids, panic
// recovery, request logging, metrics and CORS, then mounts the public auth
// routes and the bearer-guarded resource routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokens(appCfg.JWTSecret, appCfg.JWTExpiry)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	// The session cookie carries the access token for browser clients.
	// Secure cookies are enabled in production mode.
	sessionKey := appCfg.SessionKey
	if sessionKey == "" && coreCfg.Env != "prod" {
		logger.Warn("session_key empty; using a random key (sessions will not survive restarts)")
		sessionKey = auth.RandomSessionKey()
	}
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(sessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.JWTExpiry, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	authn := auth.NewAuthenticator(tokens, logger)
	authSvc := auth.NewService(userstore.New(deps.MongoDatabase), tokens, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(reqlog.Middleware(logger))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// JSON fallbacks must be set before any Mount so sub-routers inherit them.
	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	// Authentication
	loginHandler := loginfeature.NewHandler(authSvc, sessionMgr, ratelimit.NewLoginLimiter(appCfg.LoginRatePerMinute), logger)
	registerHandler := registerfeature.NewHandler(authSvc, logger)
	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Route("/auth", func(ar chi.Router) {
		ar.Mount("/login", loginfeature.Routes(loginHandler))
		ar.Mount("/register", registerfeature.Routes(registerHandler))
		ar.Mount("/logout", logoutfeature.Routes(logoutHandler))
	})

	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, authn))

	// Resources
	campaignsHandler := campaignsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/campaigns", campaignsfeature.Routes(campaignsHandler, authn))

	influencersHandler := influencersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/influencers", influencersfeature.Routes(influencersHandler, authn))

	linksHandler := campaigninfluencersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/campaign-influencers", campaigninfluencersfeature.Routes(linksHandler, authn))

	return r, nil
}
