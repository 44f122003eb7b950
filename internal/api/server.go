package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// RegisterRoutes mounts the item endpoints under /api.
func RegisterRoutes(router gin.IRouter, h *ItemHandler) {
	api := router.Group("/api")
	{
		items := api.Group("/items")
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.ReplaceItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)

		api.GET("/export", h.ExportItems)
	}
}

// NewRouter builds the gin engine with recovery, request ID and request
// logging middleware and the item routes.
func NewRouter(catalog types.Catalog, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	router := gin.New()
	router.SetTrustedProxies(nil)
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	RegisterRoutes(router, NewItemHandler(catalog, logger))
	return router
}

// Server serves the catalog API on one address.
type Server struct {
	addr   string
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a Server for catalog listening on addr.
func NewServer(addr string, catalog types.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		addr:   addr,
		router: NewRouter(catalog, logger),
		logger: logger,
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the server address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
