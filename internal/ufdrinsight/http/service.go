// Package http serves the analysis API: archive upload, stored report
// retrieval, and full-text message search.
package http

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ufdrinsight/ufdrinsight/internal/errors"
	"github.com/ufdrinsight/ufdrinsight/internal/indexer"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/conf"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdrinsight/database"
)

type Service struct {
	conf *conf.Config
	db   *database.Service

	router *gin.Engine
	server *http.Server

	mu      sync.Mutex
	indexes map[string]*indexer.Index
}

func NewService(cfg *conf.Config, db *database.Service) *Service {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("Failed to set trusted proxies")
	}

	router.Use(
		errors.RecoveryMiddleware(),
		errors.ErrorHandlerMiddleware(),
		gin.LoggerWithWriter(log.Logger, "/health"),
		corsMiddleware(),
	)

	s := &Service{
		conf:    cfg,
		db:      db,
		router:  router,
		indexes: make(map[string]*indexer.Index),
	}
	s.initRouter()
	return s
}

// ListenAndServe blocks serving the API until the listener fails or Stop is
// called.
func (s *Service) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    s.conf.HTTPAddr,
		Handler: s.router,
	}
	log.Info().Msg("Starting HTTP server on " + s.conf.HTTPAddr)
	return s.server.ListenAndServe()
}

func (s *Service) Stop() error {
	s.closeIndexes()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.Debug().Err(err).Msg("Failed to shutdown HTTP server")
		return nil
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Service) GetRouter() *gin.Engine {
	return s.router
}

func (s *Service) indexPath(id string) string {
	return filepath.Join(s.conf.IndexDir(), id+".bleve")
}

// getIndex returns the open index for an analysis, opening it on demand.
func (s *Service) getIndex(id string) (*indexer.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.indexes[id]; ok {
		return idx, nil
	}
	idx, err := indexer.Open(s.indexPath(id))
	if err != nil {
		return nil, err
	}
	s.indexes[id] = idx
	return idx, nil
}

// dropIndex closes and removes an analysis index from disk.
func (s *Service) dropIndex(id string) {
	s.mu.Lock()
	if idx, ok := s.indexes[id]; ok {
		if err := idx.Close(); err != nil {
			log.Debug().Err(err).Str("analysis", id).Msg("close index")
		}
		delete(s.indexes, id)
	}
	s.mu.Unlock()
	if err := os.RemoveAll(s.indexPath(id)); err != nil {
		log.Err(err).Str("analysis", id).Msg("remove index dir")
	}
}

func (s *Service) closeIndexes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, idx := range s.indexes {
		if err := idx.Close(); err != nil {
			log.Debug().Err(err).Str("analysis", id).Msg("close index")
		}
		delete(s.indexes, id)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
