// Package server exposes the tutoring session over HTTP: a streaming chat
// endpoint, a synchronous submission endpoint, and the embedded browser UI.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/chalkline/internal/config"
	"github.com/zulandar/chalkline/internal/llm"
)

// StartOpts holds configuration for the HTTP server.
type StartOpts struct {
	Config   *config.Config
	LLM      llm.Client
	Pipeline Submitter
	Out      io.Writer
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Config == nil {
		return fmt.Errorf("server: config is required")
	}
	if opts.LLM == nil {
		return fmt.Errorf("server: llm client is required")
	}
	if opts.Pipeline == nil {
		return fmt.Errorf("server: pipeline is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, opts.Config, opts.LLM, opts.Pipeline)

	addr := fmt.Sprintf(":%d", opts.Config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Chalkline running at http://localhost:%d\n", opts.Config.Server.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
