package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/cache"
	"github.com/cleitonzila/n64-checklist/catalog"
	"github.com/cleitonzila/n64-checklist/config"
	"github.com/cleitonzila/n64-checklist/db"
	"github.com/cleitonzila/n64-checklist/handlers"
	"github.com/cleitonzila/n64-checklist/middleware"
	"github.com/cleitonzila/n64-checklist/monitoring"
	"github.com/cleitonzila/n64-checklist/ownership"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const devAuthSecret = "dev-only-secret-change-me"

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.WithError(err).Fatal("Invalid configuration")
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFile, cfg.IsRelease())

	if cfg.AuthSecret == "" {
		if cfg.IsRelease() {
			utils.Log.Fatal("AUTH_SECRET is required in release mode")
		}
		utils.Log.Warn("AUTH_SECRET not set, using development secret")
		cfg.AuthSecret = devAuthSecret
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := monitoring.InitTracing(ctx, cfg)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()
	monitoring.InitMetrics()

	if err := db.InitDB(cfg); err != nil {
		utils.Log.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.Close()

	// Redis is optional: without it toggles are not rate limited and no refresh events are published.
	var rdb *cache.Redis
	if cfg.RedisURL != "" {
		if rdb, err = cache.Connect(cfg.RedisURL, cfg.RedisPassword); err != nil {
			utils.Log.WithError(err).Warn("Redis unavailable, continuing without it")
			rdb = nil
		} else {
			defer rdb.Close()
			go logRefreshEvents(ctx, rdb)
		}
	}

	owners := ownership.NewStore(db.Ownership)
	sessions := auth.NewSessions(cfg.AuthSecret, cfg.SessionTTL)
	h := &handlers.Handler{
		Catalog:          catalog.NewService(db.PS1, db.N64, owners, cfg.PublicViewerID),
		Ownership:        ownership.NewService(owners, rdb),
		Auth:             auth.NewAuthenticator(db.Ownership),
		Sessions:         sessions,
		Versions:         rdb,
		Limiter:          rdb,
		ToggleRateLimit:  cfg.ToggleRateLimit,
		ToggleRateWindow: cfg.ToggleRateWindow,
		SecureCookies:    cfg.UseHTTPS,
	}

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Collection-Version", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}))
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(cfg.OTelServiceName))
	}
	r.Use(middleware.RemovePoweredBy())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(monitoring.PrometheusMiddleware())
	r.Use(sessions.Session())

	r.GET("/healthz", healthz(rdb))
	r.GET("/metrics", monitoring.PrometheusHandler())
	h.Register(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			utils.Log.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	if cfg.UseHTTPS {
		utils.Log.WithFields(logrus.Fields{
			"port": cfg.Port,
			"cert": cfg.TLSCertFile,
			"key":  cfg.TLSKeyFile,
		}).Info("Starting server with HTTPS")

		server.TLSConfig = &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
			CipherSuites: []uint16{
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			},
		}
		err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		utils.Log.WithField("port", cfg.Port).Info("Starting server with HTTP")
		if cfg.IsRelease() {
			utils.Log.Warn("Running without HTTPS. Set USE_HTTPS=true for production")
		}
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Log.WithError(err).Fatal("Failed to start server")
	}
	utils.Log.Info("Server stopped")
}

func healthz(rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if err := db.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		}
		if err := rdb.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		}

		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

func logRefreshEvents(ctx context.Context, rdb *cache.Redis) {
	events, err := rdb.Subscribe(ctx)
	if err != nil {
		utils.Log.WithError(err).Warn("Refresh subscription failed")
		return
	}
	for ev := range events {
		utils.Log.WithFields(logrus.Fields{
			"user_id":  ev.UserID,
			"platform": ev.Platform,
			"version":  ev.Version,
		}).Debug("Collection refreshed")
	}
}
