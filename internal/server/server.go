package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/echomap/echomap/internal/config"
	"github.com/echomap/echomap/internal/core"
	"github.com/echomap/echomap/internal/llm"
)

type Server struct {
	Pipeline *core.Pipeline

	mu       sync.RWMutex
	snapshot *core.Result
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults.", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars win over the config file.
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		// Not fatal: the pipeline is fully functional on its deterministic
		// fallbacks without a model provider.
		log.Printf("LLM client unavailable, running on local fallbacks: %v", err)
		client = nil
	}

	return NewServerWith(core.NewPipeline(client, cfg))
}

func NewServerWith(pipeline *core.Pipeline) *Server {
	return &Server{Pipeline: pipeline}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/import", s.Import)
	r.GET("/export", s.Export)
	r.GET("/graph", s.Graph)
	r.GET("/insights", s.Insights)
	r.GET("/analytics", s.Analytics)

	return r
}

// Import runs the full pipeline over the request body (a JSON feedback
// document) and replaces the current snapshot with the result.
func (s *Server) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	result, err := s.Pipeline.ProcessDocument(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.snapshot = result
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"nodes":    len(result.Graph.Nodes),
		"links":    len(result.Graph.Edges),
		"insights": len(result.Insights),
		"feedback": len(result.Feedback),
	})
}

func (s *Server) Export(c *gin.Context) {
	result, ok := s.current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data imported yet"})
		return
	}
	c.JSON(http.StatusOK, core.Export(result))
}

func (s *Server) Graph(c *gin.Context) {
	result, ok := s.current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data imported yet"})
		return
	}
	c.JSON(http.StatusOK, result.Graph)
}

func (s *Server) Insights(c *gin.Context) {
	result, ok := s.current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data imported yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": result.Insights})
}

func (s *Server) Analytics(c *gin.Context) {
	result, ok := s.current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data imported yet"})
		return
	}
	c.JSON(http.StatusOK, result.Analytics)
}

func (s *Server) current() (*core.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.snapshot != nil
}
