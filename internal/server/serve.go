package restapi

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/addrsplit/addrsplit/internal/extract"
	"github.com/addrsplit/addrsplit/internal/i18n"
	"github.com/addrsplit/addrsplit/internal/log"
	"github.com/gin-gonic/gin"
	gi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// ExtractFunc turns one pasted line into a record.
type ExtractFunc func(text string) (extract.Record, error)

// Config is everything the server needs at start-up.
type Config struct {
	Host     string
	Port     int
	Debug    bool
	Language string
	// LogWriter receives gin's access log. Nil means log.Output().
	LogWriter io.Writer
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Option customizes a Server.
type Option func(*Server)

// WithExtractor replaces the extraction pipeline.
func WithExtractor(fn ExtractFunc) Option {
	return func(s *Server) { s.extract = fn }
}

// Server owns the gin engine and its route handlers.
type Server struct {
	cfg       Config
	engine    *gin.Engine
	localizer *gi18n.Localizer
	extract   ExtractFunc
}

// New builds a Server with every route registered.
func New(cfg Config, opts ...Option) (*Server, error) {
	loc, err := i18n.NewLocalizer(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		localizer: loc,
		extract:   extract.Extract,
	}
	for _, opt := range opts {
		opt(s)
	}

	w := cfg.LogWriter
	if w == nil {
		w = log.Output()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.LoggerWithWriter(w))
	r.Use(gin.CustomRecoveryWithWriter(w, s.recovered))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewIndexHandler(r, loc)
	NewExtractHandler(r, s.extract, loc)

	s.engine = r
	return s, nil
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// recovered renders a panic during a request as a 500.
func (s *Server) recovered(c *gin.Context, err any) {
	log.Debug(log.Basic, "recovered from panic: %v\n", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": fmt.Sprintf(i18n.Localize(s.localizer, "server_error_processing"), fmt.Sprint(err)),
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Log(i18n.Localize(s.localizer, "server_starting")+"\n", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
