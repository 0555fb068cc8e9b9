// Package app wires configuration, clients, and HTTP routes into a
// runnable server.
package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/config"
	"github.com/slidecrit/core/internal/middleware"
	"github.com/slidecrit/core/internal/modules/debate"
	"github.com/slidecrit/core/internal/modules/deck"
	"github.com/slidecrit/core/internal/modules/report"
	"github.com/slidecrit/core/internal/modules/speech"
	pkgredis "github.com/slidecrit/core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	logger *zap.Logger
}

// New initializes the application: config → clients → routes. Redis is
// optional; without it speech synthesis runs uncached.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, logger: logger}
	app.registerRoutes(rc)

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsConfig
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

func (a *App) registerRoutes(rc *pkgredis.Client) {
	engine := debate.NewEngine(a.cfg.Anthropic, a.logger)
	speechSvc := speech.NewService(a.cfg.OpenAI, rc, a.logger)

	registerRoutes(a.router, routeDeps{
		logger:   a.logger,
		engine:   engine,
		speech:   speechSvc,
		insights: engine,
		improver: engine,
	})
}

// routeDeps carries handler dependencies so route registration stays
// testable with fakes.
type routeDeps struct {
	logger   *zap.Logger
	engine   *debate.Engine
	speech   *speech.Service
	insights report.InsightSource
	improver deck.ImprovementSource
}
