package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/pipeline"
)

// Analyzer runs one credibility analysis
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisReport, error)
}

// HistoryStore persists completed reports. Nil disables history.
type HistoryStore interface {
	Append(report *model.AnalysisReport) error
	List() ([]model.AnalysisReport, error)
	Clear() error
}

// Server exposes the analysis pipeline over HTTP
type Server struct {
	analyzer Analyzer
	history  HistoryStore
	engine   *gin.Engine
}

// New builds the router around an analyzer and an optional history store
func New(analyzer Analyzer, history HistoryStore) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	s := &Server{
		analyzer: analyzer,
		history:  history,
		engine:   engine,
	}

	engine.GET("/healthz", s.handleHealth)
	api := engine.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/history", s.handleHistoryList)
		api.DELETE("/history", s.handleHistoryClear)
	}

	return s
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req model.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := s.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		var valErr *pipeline.ValidationError
		var extErr *pipeline.ExtractionError
		switch {
		case errors.As(err, &valErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Reason})
		case errors.As(err, &extErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to extract content from the provided URL"})
		default:
			log.Printf("server: analysis failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		}
		return
	}

	if s.history != nil {
		if err := s.history.Append(report); err != nil {
			// History is best effort; the report still goes out.
			log.Printf("server: history append failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleHistoryList(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusOK, gin.H{"analyses": []model.AnalysisReport{}})
		return
	}

	reports, err := s.history.List()
	if err != nil {
		log.Printf("server: history list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	if reports == nil {
		reports = []model.AnalysisReport{}
	}
	c.JSON(http.StatusOK, gin.H{"analyses": reports})
}

func (s *Server) handleHistoryClear(c *gin.Context) {
	if s.history != nil {
		if err := s.history.Clear(); err != nil {
			log.Printf("server: history clear failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
