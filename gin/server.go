// Package gin provides the HTTP API for the webvision catalog service.
// It maps requests onto the CatalogService and application error codes onto
// HTTP status codes; no domain logic lives here.
package gin

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/webvision"
	"github.com/gin-gonic/gin"
)

// Pagination bounds for the listing endpoint.
const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// Ensure Server implements http.Handler at compile time.
var _ http.Handler = (*Server)(nil)

// Server exposes the catalog over HTTP.
type Server struct {
	catalog webvision.CatalogService
	logger  *slog.Logger
	router  *gin.Engine
	started time.Time

	allowedOrigins map[string]bool
	globalLimiter  *ClientLimiter
	analyzeLimiter *ClientLimiter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAllowedOrigins sets the CORS origin allow-list. Requests from other
// origins get no CORS headers.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = make(map[string]bool, len(origins))
		for _, origin := range origins {
			s.allowedOrigins[origin] = true
		}
	}
}

// WithRateLimits overrides the default per-client rate limiters.
func WithRateLimits(global, analyze *ClientLimiter) Option {
	return func(s *Server) {
		s.globalLimiter = global
		s.analyzeLimiter = analyze
	}
}

// NewServer creates a new Server around a catalog service.
func NewServer(catalog webvision.CatalogService, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		logger:  slog.Default(),
		started: time.Now(),
		// Defaults match the limits the browser client was built against:
		// 200 requests per 15 minutes overall, 50 analyses per 5 minutes.
		globalLimiter:  NewClientLimiter(200, 15*time.Minute),
		analyzeLimiter: NewClientLimiter(50, 5*time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(s.recovery(), s.requestID(), s.cors(), s.logging())

	router.GET("/", s.handleInfo)
	router.GET("/health", s.handleHealth)

	api := router.Group("/api", s.rateLimit(s.globalLimiter, "Too many requests, please try again later."))
	api.POST("/analyze",
		s.rateLimit(s.analyzeLimiter, "Too many analysis requests, please wait before trying again."),
		s.handleAnalyze)
	api.GET("/websites", s.handleListWebsites)
	api.GET("/websites/:id", s.handleGetWebsite)
	api.PUT("/websites/:id", s.handleUpdateWebsite)
	api.DELETE("/websites/:id", s.handleDeleteWebsite)
	api.GET("/stats", s.handleStats)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Endpoint not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	s.router = router
	return s
}

// ServeHTTP satisfies the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "webvision API",
		"version":   "1.0.0",
		"status":    "active",
		"endpoints": []string{"/api/analyze", "/api/websites", "/api/stats", "/health"},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	canonical, err := webvision.NormalizeURL(body.URL)
	if err != nil {
		s.error(c, err)
		return
	}

	site, err := s.catalog.AnalyzeAndStore(c.Request.Context(), canonical)
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusCreated, site)
}

func (s *Server) handleListWebsites(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := webvision.WebsiteFilter{
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}

	sites, total, err := s.catalog.FindWebsites(c.Request.Context(), filter)
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sites,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + limit - 1) / limit,
		},
	})
}

func (s *Server) handleGetWebsite(c *gin.Context) {
	id, ok := s.websiteID(c)
	if !ok {
		return
	}

	site, err := s.catalog.FindWebsiteByID(c.Request.Context(), id)
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusOK, site)
}

func (s *Server) handleUpdateWebsite(c *gin.Context) {
	id, ok := s.websiteID(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	upd, err := parseUpdate(body)
	if err != nil {
		s.error(c, err)
		return
	}

	site, err := s.catalog.UpdateWebsite(c.Request.Context(), id, upd)
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusOK, site)
}

func (s *Server) handleDeleteWebsite(c *gin.Context) {
	id, ok := s.websiteID(c)
	if !ok {
		return
	}

	if err := s.catalog.DeleteWebsite(c.Request.Context(), id); err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Website deleted successfully"})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Stats(c.Request.Context()))
}

// websiteID parses and validates the :id path parameter, writing a 400
// response when it is unusable.
func (s *Server) websiteID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid website ID"})
		return 0, false
	}
	return id, true
}

// editableFields is the allow-list of fields a PUT may touch.
var editableFields = map[string]bool{
	"brand_name":     true,
	"description":    true,
	"ai_description": true,
	"status":         true,
	"language":       true,
	"keywords":       true,
}

// parseUpdate filters a request body against the editable-field allow-list.
// String values are trimmed; empty strings and unknown fields are dropped.
func parseUpdate(body map[string]any) (webvision.WebsiteUpdate, error) {
	var upd webvision.WebsiteUpdate

	for key, value := range body {
		if !editableFields[key] {
			continue
		}

		if key == "keywords" {
			raw, ok := value.([]any)
			if !ok {
				continue
			}
			keywords := make([]string, 0, len(raw))
			for _, v := range raw {
				token, ok := v.(string)
				if !ok {
					continue
				}
				token = strings.TrimSpace(token)
				if token == "" || len(keywords) == webvision.MaxKeywords {
					continue
				}
				keywords = append(keywords, token)
			}
			upd.Keywords = &keywords
			continue
		}

		text, ok := value.(string)
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		switch key {
		case "brand_name":
			upd.BrandName = &text
		case "description":
			upd.Description = &text
		case "ai_description":
			upd.AIDescription = &text
		case "status":
			upd.Status = &text
		case "language":
			upd.Language = &text
		}
	}

	if upd.IsZero() {
		return upd, webvision.Errorf(webvision.EINVALID, "No valid fields to update")
	}
	return upd, nil
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// codeToStatus maps application error codes onto HTTP status codes.
// EUNAVAILABLE maps to 404 because from the caller's perspective an
// unreachable site and a missing record read the same way.
var codeToStatus = map[string]int{
	webvision.EINVALID:     http.StatusBadRequest,
	webvision.ENOTFOUND:    http.StatusNotFound,
	webvision.EFORBIDDEN:   http.StatusForbidden,
	webvision.ETIMEOUT:     http.StatusRequestTimeout,
	webvision.EUNAVAILABLE: http.StatusNotFound,
	webvision.EINTERNAL:    http.StatusInternalServerError,
}

// error writes an error response. Internal errors are logged in full
// server-side and sanitized for the client.
func (s *Server) error(c *gin.Context, err error) {
	status, ok := codeToStatus[webvision.ErrorCode(err)]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("internal error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
		c.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(status, gin.H{"error": webvision.ErrorMessage(err)})
}
