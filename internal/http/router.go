package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/account-inventory/internal/http/handlers"
	httpMW "github.com/yungbote/account-inventory/internal/http/middleware"
	"github.com/yungbote/account-inventory/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger
	// ServiceName labels otelgin spans. Empty disables the otel middleware.
	ServiceName string

	AccountHandler *httpH.AccountHandler
	MetaHandler    *httpH.MetaHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	if cfg.MetaHandler != nil {
		r.GET("/", cfg.MetaHandler.Root)
	}

	// Accounts
	if cfg.AccountHandler != nil {
		r.GET("/accounts", cfg.AccountHandler.ListAccounts)
		r.GET("/accounts/:accountNumber", cfg.AccountHandler.GetAccount)
		r.GET("/tenants", cfg.AccountHandler.ListTenants)
		r.GET("/stats", cfg.AccountHandler.GetStats)
	}

	return r
}
