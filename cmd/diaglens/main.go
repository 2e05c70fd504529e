package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/probelab/diaglens/internal/config"
	"github.com/probelab/diaglens/internal/diag"
	"github.com/probelab/diaglens/internal/ignore"
	"github.com/probelab/diaglens/internal/server"
	"github.com/probelab/diaglens/internal/session"
	"github.com/probelab/diaglens/internal/sourcemap"
	"github.com/probelab/diaglens/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Config file is optional; defaults give an empty ignore list and no
	// source maps.
	cfg := config.Default()
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Source map registrations
	resolver := sourcemap.NewResolver()
	for url, path := range cfg.SourceMaps {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read source map", "url", url, "path", path, "error", err)
			os.Exit(1)
		}
		if err := resolver.Register(url, data); err != nil {
			logger.Error("failed to register source map", "url", url, "error", err)
			os.Exit(1)
		}
	}

	ignoreList, err := ignore.New(cfg.IgnorePatterns)
	if err != nil {
		logger.Error("invalid ignore patterns", "error", err)
		os.Exit(1)
	}

	symbolizer := &sourcemap.Symbolizer{Resolver: resolver}
	resolvers := diag.Resolvers{
		Stack:    symbolizer,
		Error:    symbolizer,
		Ignore:   ignoreList,
		Location: sourcemap.LocationFormatter{},
	}

	recordStore := store.New(cfg.MaxRecords)
	sessionMgr := session.NewManager(recordStore, resolvers)

	logger.Info("loaded configuration",
		"ignorePatterns", len(cfg.IgnorePatterns),
		"sourceMaps", len(cfg.SourceMaps),
		"maxRecords", cfg.MaxRecords)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Create HTTP handler with proper session management
	handler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		// Create a new MCP server instance for each request
		// This allows the SDK to manage sessions properly
		return server.NewMCPServer(sessionMgr, logger)
	}, &mcp.StreamableHTTPOptions{})

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.Handle("/ingest", server.NewIngestHandler(recordStore, logger))

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("diaglens MCP server listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
