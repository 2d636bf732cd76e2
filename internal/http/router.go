package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/vmduarte/conciliador-backend/internal/http/handlers"
	httpMW "github.com/vmduarte/conciliador-backend/internal/http/middleware"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CORSOrigins []string

	HealthHandler    *httpH.HealthHandler
	ReconcileHandler *httpH.ReconcileHandler
	RunHandler       *httpH.RunHandler
	ChatHandler      *httpH.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("conciliador"))
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.ReconcileHandler != nil {
			api.POST("/conciliar", cfg.ReconcileHandler.Reconcile)
		}
		if cfg.RunHandler != nil {
			api.GET("/runs", cfg.RunHandler.ListRuns)
			api.GET("/runs/:id", cfg.RunHandler.GetRun)
			api.GET("/runs/:id/artifact", cfg.RunHandler.DownloadArtifact)
		}
		if cfg.ChatHandler != nil {
			api.POST("/chat", cfg.ChatHandler.Chat)
		}
	}

	return r
}
