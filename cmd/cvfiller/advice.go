package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvfiller/internal/extract"
	"github.com/jonathan/cvfiller/internal/llm"
	"github.com/jonathan/cvfiller/internal/observability"
	"github.com/jonathan/cvfiller/internal/parsing"
)

var adviceCommand = &cobra.Command{
	Use:   "advice <file>",
	Short: "Analyze a local resume file and print advisory feedback",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdvice,
}

var adviceAPIKey string

func init() {
	adviceCommand.Flags().StringVar(&adviceAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	rootCmd.AddCommand(adviceCommand)
}

func runAdvice(cmd *cobra.Command, args []string) error {
	apiKey := adviceAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("Gemini API key required: set --api-key or GEMINI_API_KEY")
	}

	text, err := extract.File(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	advice, err := parsing.AnalyzeResume(ctx, client, text)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintAdvice(advice)
	return nil
}
