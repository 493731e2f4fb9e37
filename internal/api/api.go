// Package api serves the dashboard page and its JSON views over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/render"
	"MarketDashboard/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	DefaultTimeout      = 30 * time.Second
	ServiceName         = "market-dashboard"
	ServiceVersion      = "1.0.0"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// Dashboard is the view-building surface the handlers depend on.
type Dashboard interface {
	Session() session.Status
	Location() *time.Location
	Indices(ctx context.Context, trend string) (*dashboard.IndicesView, error)
	Stock(ctx context.Context, req dashboard.StockRequest) *dashboard.StockView
	NewsFeed(ctx context.Context, category string) (*dashboard.NewsView, error)
	Page(ctx context.Context, req dashboard.PageRequest) (*dashboard.Page, error)
}

// APIHandler handles HTTP requests using Gin.
type APIHandler struct {
	dashboard Dashboard
	validator *Validator
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(d Dashboard) *APIHandler {
	return &APIHandler{
		dashboard: d,
		validator: GetValidator(),
	}
}

// SetupRoutes configures all routes.
func (h *APIHandler) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(render.Templates())

	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/", h.GetPage)
	router.GET("/health", h.HealthCheck)

	v := router.Group("/api")
	v.GET("/session", h.GetSession)
	v.GET("/indices", h.GetIndices)
	v.GET("/stock", h.GetStock)
	v.GET("/news", h.GetNews)

	return router
}

// NewServer wraps the routes in an http.Server so callers can shut it down.
func (h *APIHandler) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
