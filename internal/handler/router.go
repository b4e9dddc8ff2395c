package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP API around runner.
func NewRouter(runner Runner, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	vocabularyHandler := NewVocabularyHandler(runner, log)

	api := r.Group("/api")
	{
		// Any method reaches the handler so that it can answer 405 itself
		api.Any("/vocabulary", vocabularyHandler.Define)
		api.GET("/sample-text", vocabularyHandler.SampleText)
	}

	return r
}
