package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cvfiller/internal/config"
	"github.com/jonathan/cvfiller/internal/export"
	"github.com/jonathan/cvfiller/internal/extract"
	"github.com/jonathan/cvfiller/internal/llm"
	"github.com/jonathan/cvfiller/internal/observability"
	"github.com/jonathan/cvfiller/internal/parsing"
	"github.com/jonathan/cvfiller/internal/resume"
)

var parseCommand = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse local resume files into structured records",
	Long: `Extracts text from each file, parses it into the canonical record via
Gemini and writes one export per input. Failures are reported per file
without aborting the batch.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseConfigPath  string
	parseFormat      string
	parseOutputDir   string
	parseConcurrency int
	parseAPIKey      string
	parseVerbose     bool
)

func init() {
	parseCommand.Flags().StringVar(&parseConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	parseCommand.Flags().StringVarP(&parseFormat, "format", "f", "", "Export format: text, json, html or pdf (default text)")
	parseCommand.Flags().StringVarP(&parseOutputDir, "output-dir", "o", "", "Directory for exported files (default current directory)")
	parseCommand.Flags().IntVar(&parseConcurrency, "concurrency", 0, "Parallel file workers (default 4)")
	parseCommand.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	parseCommand.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(parseCommand)
}

// parseSettings resolves flag, config-file and default values for one
// invocation of the parse command.
func parseSettings() (config.FileConfig, error) {
	cfg := config.FileConfig{
		APIKey:      parseAPIKey,
		OutputDir:   parseOutputDir,
		Format:      parseFormat,
		Concurrency: parseConcurrency,
		Verbose:     parseVerbose,
	}

	if parseConfigPath != "" {
		fileCfg, err := config.LoadFileConfig(parseConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(config.FileConfig{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		OutputDir:   ".",
		Format:      "text",
		Concurrency: 4,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("Gemini API key required: set --api-key or GEMINI_API_KEY")
	}
	return cfg, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := parseSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var renderer *export.PDFRenderer
	if cfg.Format == "pdf" {
		renderer = export.NewPDFRenderer()
	}

	var (
		mu       sync.Mutex
		failures []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, path := range args {
		g.Go(func() error {
			if err := parseOne(gctx, client, renderer, cfg, path); err != nil {
				log.Printf("Error parsing %s: %v", path, err)
				mu.Lock()
				failures = append(failures, path)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed: %s",
			len(failures), len(args), strings.Join(failures, ", "))
	}
	return nil
}

// parseOne runs the extract -> parse -> reconcile -> export chain for a
// single file.
func parseOne(ctx context.Context, client llm.Client, renderer *export.PDFRenderer, cfg config.FileConfig, path string) error {
	if cfg.Verbose {
		log.Printf("Extracting text from %s", path)
	}

	text, err := extract.File(path)
	if err != nil {
		return err
	}

	parsed, err := parsing.ParseResume(ctx, client, text)
	if err != nil {
		return err
	}

	rec := resume.ReconcileJSON(parsed)

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRecord(filepath.Base(path), rec)
	}

	var (
		out []byte
		ext string
	)
	switch cfg.Format {
	case "json":
		out, err = export.JSON(rec)
		ext = ".json"
	case "html":
		out, err = export.HTML(rec)
		ext = ".html"
	case "pdf":
		out, err = renderer.RenderPDF(ctx, rec)
		ext = ".pdf"
	default:
		out = []byte(export.Text(rec))
		ext = ".txt"
	}
	if err != nil {
		return fmt.Errorf("failed to render %s output: %w", cfg.Format, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(cfg.OutputDir, base+ext)
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if cfg.Verbose {
		log.Printf("Wrote %s", outPath)
	}
	return nil
}
