package server

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"finance-dashboard/src/export"
	"finance-dashboard/src/logger"
	"finance-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

// RefreshFunc recomputes the dashboard payload from source data. The server
// never computes anything itself; it only serves the latest snapshot.
type RefreshFunc func() (*models.MDashboardData, error)

type DashboardServer struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	engine  *gin.Engine
	refresh RefreshFunc

	// Local cache
	latestState *models.MDashboardData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, logger *logger.Logger, refresh RefreshFunc) *DashboardServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:  cfg,
		Logger:  logger,
		engine:  gin.Default(),
		refresh: refresh,
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/dashboard", s.getDashboard)
	s.engine.GET("/api/summary", s.getSummary)
	s.engine.GET("/api/correlation", s.getCorrelation)
	s.engine.GET("/api/export/:artifact", s.getExport)
	s.engine.POST("/api/refresh", s.postRefresh)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)
	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

// SetLatest publishes a freshly computed snapshot.
func (s *DashboardServer) SetLatest(data *models.MDashboardData) {
	s.stateMutex.Lock()
	s.latestState = data
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getLatest() *models.MDashboardData {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.latestState
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	latest := s.getLatest()

	resp := gin.H{
		"status": "ok",
		"ready":  latest != nil,
	}
	if latest != nil {
		resp["computed_at"] = latest.ComputedAt
	}
	c.JSON(200, resp)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"tickers":   s.Config.Tickers,
		"benchmark": s.Config.Benchmark,
		"range":     s.Config.Range,
		"alignment": s.Config.Alignment,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboard(c *gin.Context) {
	latest := s.getLatest()
	if latest == nil {
		c.JSON(503, gin.H{"error": "no data computed yet"})
		return
	}
	c.JSON(200, latest)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSummary(c *gin.Context) {
	latest := s.getLatest()
	if latest == nil {
		c.JSON(503, gin.H{"error": "no data computed yet"})
		return
	}
	c.JSON(200, gin.H{
		"summaries":   latest.Summaries,
		"computed_at": latest.ComputedAt,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getCorrelation(c *gin.Context) {
	latest := s.getLatest()
	if latest == nil {
		c.JSON(503, gin.H{"error": "no data computed yet"})
		return
	}
	c.JSON(200, latest.Correlation)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getExport(c *gin.Context) {
	latest := s.getLatest()
	if latest == nil {
		c.JSON(503, gin.H{"error": "no data computed yet"})
		return
	}

	name := c.Param("artifact")
	exporter := export.NewExporter(s.Config.Export.Precision)
	table, ok := export.ArtifactFiles(latest, exporter)[name]
	if !ok {
		c.JSON(404, gin.H{"error": fmt.Sprintf("unknown artifact '%s'", name)})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		s.Logger.Error("Export %s failed: %v", name, err)
		c.JSON(500, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(200, "text/csv; charset=utf-8", buf.Bytes())
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) postRefresh(c *gin.Context) {
	if s.refresh == nil {
		c.JSON(503, gin.H{"error": "refresh not available"})
		return
	}

	data, err := s.refresh()
	if err != nil {
		s.Logger.Error("Refresh failed: %v", err)
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	s.SetLatest(data)
	c.JSON(200, gin.H{
		"status":      "refreshed",
		"computed_at": data.ComputedAt,
	})
}
