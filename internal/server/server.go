// Package server serves texts, accepts results and ranks them on a leaderboard.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"github.com/verte-zerg/typeflow/internal/model"
)

// Store is the persistence the server needs.
type Store interface {
	InsertText(ctx context.Context, t model.Text) (int64, error)
	GetText(ctx context.Context, id int64) (model.Text, error)
	ListActiveTexts(ctx context.Context, duration int) ([]model.Text, error)
	ListTexts(ctx context.Context) ([]model.Text, error)
	DeleteText(ctx context.Context, id int64) error
	InsertResult(ctx context.Context, r model.SessionResult) (model.StoredResult, error)
	TopResults(ctx context.Context, duration, limit int) ([]model.StoredResult, error)
}

// Server is the HTTP API.
type Server struct {
	cfg   model.ServerConfig
	store Store
	http  *http.Server
}

// New builds the server and its routes.
func New(cfg model.ServerConfig, st Store) *Server {
	s := &Server{cfg: cfg, store: st}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) routes() *gin.Engine {
	if s.cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(requestIDMiddleware())
	e.Use(requestLogMiddleware())
	e.Use(corsMiddleware())
	e.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	e.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	api := e.Group("/api")
	api.GET("/health", s.health)
	api.GET("/texts", s.getText)
	api.POST("/texts", s.addText)
	api.GET("/texts/all", s.listTexts)
	api.DELETE("/texts/:id", s.deleteText)
	api.POST("/results", s.postResult)
	api.GET("/leaderboard", s.leaderboard)
	return e
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("server: HTTP listening", "addr", s.cfg.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "server: shutdown HTTP failed", "error", err)
		return err
	}
	slog.InfoContext(ctx, "server: shutdown completed")
	return nil
}
