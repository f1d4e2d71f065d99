// Package main provides the entry point for the CVFiller CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvfiller",
	Short: "CVFiller resume parsing service",
	Long:  "CVFiller extracts text from uploaded resumes, parses it into a structured record via Gemini and serves the result over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
