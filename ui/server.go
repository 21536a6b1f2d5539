package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"

	"payrecon/app"
	"payrecon/internal"
	"payrecon/internal/config"
)

// Server is the upload-and-reconcile web front end
type Server struct {
	router    *gin.Engine
	config    config.ServerConfig
	service   *app.ReconciliationService
	logger    *internal.Logger
	assets    fs.FS
	templates *template.Template
	help      template.HTML
	cache     *ResultCache
	runs      *semaphore.Weighted
}

// NewServer creates a server with its templates parsed and routes registered
func NewServer(cfg config.ServerConfig, service *app.ReconciliationService, logger *internal.Logger, assets fs.FS) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.MaxConcurrentRuns <= 0 {
		cfg.MaxConcurrentRuns = 1
	}
	if cfg.ExportFilename == "" {
		cfg.ExportFilename = config.DefaultExportFilename
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:  gin.New(),
		config:  cfg,
		service: service,
		logger:  logger.With("ui"),
		assets:  assets,
		cache:   NewResultCache(cfg.ResultTTL),
		runs:    semaphore.NewWeighted(cfg.MaxConcurrentRuns),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// parseTemplates loads every page template and renders the help text
func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"add":   func(a, b int) int { return a + b },
		"upper": strings.ToUpper,
		"negative": func(d decimal.Decimal) bool {
			return d.IsNegative()
		},
		"join": strings.Join,
	}

	templatesFS, err := fs.Sub(s.assets, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	helpSource, err := fs.ReadFile(templatesFS, "help.md")
	if err != nil {
		return fmt.Errorf("failed to read help text: %w", err)
	}
	s.help = renderMarkdown(helpSource)
	return nil
}

// renderMarkdown converts trusted, embedded markdown to HTML
func renderMarkdown(src []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(src, p, renderer))
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.MaxMultipartMemory = s.config.MaxUploadBytes

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		s.logger.Warn("static assets unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/reconcile", s.handleReconcile)
	s.router.GET("/download/:id", s.handleDownload)
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/reconcile", s.handleAPIReconcile)
}

// requestLogger logs one line per request at debug level, errors at warn
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		if status >= http.StatusInternalServerError {
			s.logger.Warn("%s %s -> %d in %.2fms", c.Request.Method, c.Request.URL.Path, status, elapsed)
			return
		}
		s.logger.Debug("%s %s -> %d in %.2fms", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}

// Handler exposes the router, for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting payrecon UI on http://%s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderTemplate executes a template into a buffer first so a failing
// template never leaves a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Help"] = s.help

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template error for %s: %v", name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Fail("INTERNAL_ERROR", "template rendering failed", ""))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
