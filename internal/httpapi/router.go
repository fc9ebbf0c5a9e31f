// Package httpapi exposes student reports over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Reports        ReportService
	Pinger         Pinger
	Metrics        *Metrics
	Logger         *slog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
	LogLevel       string
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(opts RouterOptions) *gin.Engine {
	setGinMode(opts.LogLevel)

	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(opts.Logger),
		gin.Recovery(),
		cors.New(newCORSConfig(opts.CORSOrigins)),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})),
	)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	NewReportHandler(opts.Reports, opts.Pinger, opts.RequestTimeout, opts.Metrics, opts.Logger).RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		writeJSON(c, http.StatusNotFound, ErrorResponse{
			ErrorCode: CodeNotFound,
			Detail:    "route not found",
			RequestID: GetRequestID(c),
		})
	})
	return router
}

func newCORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	return corsConfig
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
