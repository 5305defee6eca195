package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/solargraph/internal/agent"
	"github.com/agenthands/solargraph/internal/cache"
	"github.com/agenthands/solargraph/internal/config"
	"github.com/agenthands/solargraph/internal/graph"
	"github.com/agenthands/solargraph/internal/llm"
	"github.com/agenthands/solargraph/internal/query"
)

type Server struct {
	Engine     *query.Engine
	Cache      *cache.Cache
	SingleShot *agent.SingleShot
	ReAct      *agent.ReAct
}

// NewServerWith wires a server from prebuilt components. Tests use it with
// an in-memory cache and a scripted LLM client.
func NewServerWith(engine *query.Engine, c *cache.Cache, client llm.ToolClient, cfg *config.Config) *Server {
	return &Server{
		Engine:     engine,
		Cache:      c,
		SingleShot: agent.NewSingleShot(engine, c, client, cfg.Agent),
		ReAct:      agent.NewReAct(engine, c, client, cfg.Agent),
	}
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using built-in defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Override config with env vars if present (simple override logic)
	if envProvider := os.Getenv("LLM_PROVIDER"); envProvider != "" {
		cfg.LLM.Provider = envProvider
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		cfg.LLM.Model = envModel
	}
	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("LLM_BASE_URL"); envBaseURL != "" {
		cfg.LLM.BaseURL = envBaseURL
	}
	if envSource := os.Getenv("GRAPH_SOURCE"); envSource != "" {
		cfg.Graph.Source = envSource
	}
	if envSnapshot := os.Getenv("GRAPH_SNAPSHOT"); envSnapshot != "" {
		cfg.Graph.SnapshotPath = envSnapshot
	}
	if envURI := os.Getenv("MEMGRAPH_URI"); envURI != "" {
		cfg.Graph.URI = envURI
		cfg.Graph.User = os.Getenv("MEMGRAPH_USER")
		cfg.Graph.Password = os.Getenv("MEMGRAPH_PASSWORD")
	}
	if envCacheDir := os.Getenv("CACHE_DIR"); envCacheDir != "" {
		cfg.Cache.Dir = envCacheDir
	}

	var store *graph.Store
	switch cfg.Graph.Source {
	case "memgraph":
		store, err = graph.LoadFromMemgraph(context.Background(),
			cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
	default:
		store, err = graph.Load(cfg.Graph.SnapshotPath)
	}
	if err != nil {
		log.Fatalf("Failed to load knowledge graph: %v", err)
	}
	log.Printf("Knowledge graph ready: %d triples", store.Len())

	c, err := cache.Open(cache.Options{
		Dir:      cfg.Cache.Dir,
		InMemory: cfg.Cache.InMemory,
		Capacity: cfg.Cache.Capacity,
		TTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to open answer cache: %v", err)
	}

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	return NewServerWith(query.NewEngine(store), c, client, cfg)
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/ask", s.Ask)
	r.POST("/ask/react", s.AskReAct)

	api := r.Group("/api")
	api.GET("/stats", s.Stats)
	api.GET("/entities", s.Entities)
	api.GET("/absorbers", s.Absorbers)
	api.GET("/architectures", s.Architectures)
	api.GET("/relationships", s.Relationships)
	api.GET("/search", s.Search)
	api.GET("/cache/stats", s.CacheStats)
	api.POST("/cache/clear", s.CacheClear)

	return r
}

type AskRequest struct {
	Question string `json:"question"`
}

func (s *Server) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: question is required"})
		return
	}

	answer, err := s.SingleShot.Answer(c.Request.Context(), req.Question)
	if err != nil {
		log.Printf("ask failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "LLM request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (s *Server) AskReAct(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: question is required"})
		return
	}

	resp, err := s.ReAct.Answer(c.Request.Context(), req.Question)
	if err != nil {
		log.Printf("ask/react failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "LLM request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":              resp.Answer,
		"provenance":          resp.Provenance,
		"provenance_markdown": resp.Provenance.ToMarkdown(),
	})
}

func (s *Server) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.GraphSummary())
}

func (s *Server) Entities(c *gin.Context) {
	entityType := c.Query("type")
	if entityType == "" {
		c.JSON(http.StatusOK, s.Engine.AllEntities())
		return
	}

	res, err := s.Engine.EntitiesByType(entityType)
	if err != nil {
		var ipe *query.InvalidParameterError
		if errors.As(err, &ipe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) Absorbers(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.Absorbers())
}

func (s *Server) Architectures(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.CellArchitectures())
}

func (s *Server) Relationships(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.Relationships())
}

func (s *Server) Search(c *gin.Context) {
	keyword := c.Query("q")
	if strings.TrimSpace(keyword) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	c.JSON(http.StatusOK, s.Engine.SearchByKeyword(keyword))
}

func (s *Server) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Cache.Stats())
}

func (s *Server) CacheClear(c *gin.Context) {
	if err := s.Cache.Clear(); err != nil {
		log.Printf("cache clear failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
