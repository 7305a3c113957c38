package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"kharcha/internal/mcptool"
)

func mcpCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP tool server",
		Long: `Expose expense parsing and tracking as Model Context Protocol tools, so
an AI assistant can parse, log and query expenses through kharcha.

By default the server speaks over stdio, for use as a local MCP server
entry in an assistant's configuration. With --http it serves the
streamable HTTP transport at /mcp instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			p, _, err := initParser()
			if err != nil {
				return err
			}

			s := mcptool.New(store, p, version)

			if httpAddr == "" {
				slog.Info("MCP server listening on stdio")
				return server.ServeStdio(s.Server())
			}
			return serveMCPHTTP(ctx, s, httpAddr)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve the streamable HTTP transport on this address instead of stdio")

	return cmd
}

// serveMCPHTTP mounts the streamable HTTP transport at /mcp and runs until
// ctx is cancelled.
func serveMCPHTTP(ctx context.Context, s *mcptool.Server, addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.Server())

	mux := http.NewServeMux()
	mux.Handle("/mcp/", http.StripPrefix("/mcp", httpServer))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening", "addr", addr, "endpoint", "/mcp")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("Shutting down MCP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
