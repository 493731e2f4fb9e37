package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/render"

	"github.com/gin-gonic/gin"
)

// GetPage handles GET / with the full HTML dashboard.
func (h *APIHandler) GetPage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	req, err := h.pageRequest(c)
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	page, err := h.dashboard.Page(ctx, req)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, render.PageTemplate, render.NewHTMLData(page))
}

// pageRequest is strict on trend and category only. Stock inputs are never
// rejected here; the stock view reports them instead.
func (h *APIHandler) pageRequest(c *gin.Context) (dashboard.PageRequest, error) {
	var req dashboard.PageRequest
	var err error

	if req.Trend, err = h.validator.ValidateTrend(c.Query("trend")); err != nil {
		return req, err
	}
	if req.Category, err = h.validator.ValidateCategory(c.Query("category")); err != nil {
		return req, err
	}
	req.Stock = h.validator.PageStockRequest(c.Query("symbol"), c.Query("start"), c.Query("end"), c.Query("interval"), h.dashboard.Location())
	req.Tab = c.Query("tab")
	return req, nil
}

// GetSession handles GET /api/session.
func (h *APIHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Session())
}

// GetIndices handles GET /api/indices.
func (h *APIHandler) GetIndices(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	trend, err := h.validator.ValidateTrend(c.Query("trend"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	view, err := h.dashboard.Indices(ctx, trend)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetStock handles GET /api/stock.
func (h *APIHandler) GetStock(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	req, err := h.validator.ValidateStockRequest(c.Query("symbol"), c.Query("start"), c.Query("end"), c.Query("interval"), h.dashboard.Location())
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.dashboard.Stock(ctx, req))
}

// GetNews handles GET /api/news.
func (h *APIHandler) GetNews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	category, err := h.validator.ValidateCategory(c.Query("category"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	view, err := h.dashboard.NewsFeed(ctx, category)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, view)
}

// HealthCheck handles GET /health.
func (h *APIHandler) HealthCheck(c *gin.Context) {
	st := h.dashboard.Session()
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"service":     ServiceName,
		"version":     ServiceVersion,
		"market_open": st.Open,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleError logs the error and sends the JSON error body.
func (h *APIHandler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID := c.GetString(RequestIDContextKey)
	if requestID == "" {
		requestID = "unknown"
	}

	if statusCode >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, requestID, err)
	} else {
		log.Printf("[WARN] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, requestID, err)
	}

	c.JSON(statusCode, gin.H{
		"error":      userMessage,
		"request_id": requestID,
	})
}

func (h *APIHandler) handleValidationError(c *gin.Context, err error) {
	h.handleError(c, err, http.StatusBadRequest, err.Error())
}
