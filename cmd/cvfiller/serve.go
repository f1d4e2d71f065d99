package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvfiller/internal/config"
	"github.com/jonathan/cvfiller/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Run the CVFiller HTTP API server",
	Long: `Starts the REST API: auth, resume upload parsing, advice and stored
resume CRUD. Configuration comes from the environment (PORT, DATABASE_URL,
GEMINI_API_KEY, JWT_SECRET).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCommand)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
