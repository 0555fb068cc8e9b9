package app

import (
	"github.com/gin-gonic/gin"

	"github.com/slidecrit/core/internal/modules/debate"
	"github.com/slidecrit/core/internal/modules/deck"
	"github.com/slidecrit/core/internal/modules/persona"
	"github.com/slidecrit/core/internal/modules/report"
	"github.com/slidecrit/core/internal/modules/speech"
	"github.com/slidecrit/core/internal/pkg/response"
)

func registerRoutes(r *gin.Engine, deps routeDeps) {
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	persona.NewHandler().RegisterRoutes(api)
	deck.NewHandler(deck.NewGenerator(deps.improver, deps.logger), deps.logger).RegisterRoutes(api)
	debate.NewHandler(deps.engine, deps.logger).RegisterRoutes(api)
	speech.NewHandler(deps.speech, deps.logger).RegisterRoutes(api)
	report.NewHandler(deps.insights, deps.logger).RegisterRoutes(api)
}
