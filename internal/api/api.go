// Package api serves regression fits over HTTP.
package api

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"rasterfit/internal/config"
	"rasterfit/internal/data"
	"rasterfit/internal/render"
	"rasterfit/internal/report"
	"rasterfit/internal/service"
)

type Server struct {
	cfg      *config.Config
	analyzer *service.Analyzer
	logger   *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, analyzer: service.NewAnalyzer(cfg, logger), logger: logger}
}

// Router wires the endpoints. /health is always open; the others require the
// X-API-Key header when an API key is configured.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/")
	api.Use(apiKeyMiddleware(s.cfg.Server.APIKey))
	api.POST("/fit", s.handleFit)
	api.POST("/plot", s.handlePlot)
	return r
}

func apiKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

type fitRequest struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	// XName and YName label the plot axes.
	XName string `json:"x_name"`
	YName string `json:"y_name"`
}

func (s *Server) handleFit(c *gin.Context) {
	var req fitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pair := data.SamplePair{X: req.X, Y: req.Y}
	results, choice, err := s.analyzer.Fit(pair)
	if err != nil {
		s.fail(c, err)
		return
	}
	rep := report.New("", pair, results, choice, s.cfg.Fit.Significance)
	rep.XSource, rep.YSource = req.XName, req.YName
	c.JSON(http.StatusOK, rep)
}

var plotFormats = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

// handlePlot returns the rendered scatterplot; ?format= picks png (default),
// svg or pdf.
func (s *Server) handlePlot(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "png"))
	mime, ok := plotFormats[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format " + format})
		return
	}
	var req fitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pair := data.SamplePair{X: req.X, Y: req.Y}
	_, choice, err := s.analyzer.Fit(pair)
	if err != nil {
		s.fail(c, err)
		return
	}
	fig := render.Figure{
		Samples:     pair,
		Choice:      choice,
		XSource:     req.XName,
		YSource:     req.YName,
		CurvePoints: s.cfg.Render.Points,
	}
	var buf bytes.Buffer
	rc := s.cfg.Render
	if err := render.WritePlot(&buf, fig, format, lengthOr(rc.WidthIn, render.DefaultWidth), lengthOr(rc.HeightIn, render.DefaultHeight)); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("X-Regression-Model", choice.Kind.String())
	c.Data(http.StatusOK, mime, buf.Bytes())
}

func (s *Server) fail(c *gin.Context, err error) {
	if service.IsInputError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func lengthOr(inches float64, def vg.Length) vg.Length {
	if inches <= 0 {
		return def
	}
	return vg.Length(inches) * vg.Inch
}
