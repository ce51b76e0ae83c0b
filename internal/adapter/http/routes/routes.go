package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"loginapp/internal/adapter/http/handler"
	"loginapp/internal/adapter/http/middleware"
	"loginapp/internal/core/telemetry"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
}

// Options tunes the middleware chain. Metrics and Logger are optional.
type Options struct {
	ServiceName  string
	Metrics      *telemetry.AppMetrics
	Logger       *otelzap.Logger
	EnforceHTTPS bool
}

func SetupRouter(handlers HandlersConfig, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	if opts.EnforceHTTPS {
		logger := zap.L()

		if opts.Logger != nil {
			logger = opts.Logger.Logger
		}

		router.Use(middleware.RequireHTTPS(logger))
	}

	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(opts.ServiceName))

	if opts.Logger != nil {
		router.Use(middleware.Logging(opts.Logger, opts.ServiceName))
	}

	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/")
	{
		if handlers.AuthHandler != nil {
			public.POST("/auth", handlers.AuthHandler.Login)
		}

		if handlers.UserHandler != nil {
			public.POST("/signup", handlers.UserHandler.SignUp)
		}
	}

	return router
}
