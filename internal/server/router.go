// Package server exposes the upload pipeline over HTTP (gin) and reports
// readiness over the gRPC health protocol.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/export"
	"github.com/joseph-ayodele/resumes-tracker/internal/pipeline"
	"github.com/joseph-ayodele/resumes-tracker/internal/repository"
)

// Defaults fill in credentials a request leaves out.
type Defaults struct {
	Credential    string
	DatabaseID    string
	MaxDocumentMB int
}

type Deps struct {
	Service   *pipeline.Service
	Processor *pipeline.Processor // nil disables /documents
	Runs      repository.UploadRepository
	Export    *export.Service
	Defaults  Defaults
	Logger    *slog.Logger
}

// NewRouter builds the gin engine with every route under /api/v1.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Export == nil {
		d.Export = export.NewService(d.Runs, d.Logger)
	}
	h := &Handler{deps: d, log: d.Logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger))
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", HeaderDatabaseID}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.POST("/connect", h.Connect)
		api.POST("/records", h.UploadRecords)
		api.POST("/documents", h.ProcessDocument)
		api.GET("/runs", h.ListRuns)
		api.GET("/runs/:id", h.GetRun)
		api.GET("/runs/:id/report.xlsx", h.RunReport)
	}
	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))

		c.Next()

		logger.Info("http.request",
			"req_id", rid,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}
