package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arwiki-tools/qualscan/internal/config"
	"github.com/arwiki-tools/qualscan/internal/fetch"
	"github.com/arwiki-tools/qualscan/internal/history"
	"github.com/arwiki-tools/qualscan/internal/log"
	"github.com/arwiki-tools/qualscan/internal/model"
	"github.com/arwiki-tools/qualscan/internal/pipeline"
	"github.com/arwiki-tools/qualscan/internal/report"
)

// NewAssessCmd creates the assess command.
func NewAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess [article-title]",
		Short: "Assess the editorial quality of a wiki article",
		Long: `Assess fetches an article through the MediaWiki API and scores it.

The assessment covers:
- Structure (sections, lead, balance)
- References (count, completeness, source mix)
- Maintenance state (cleanup banners, categories)
- Links (internal linking, red links, bare URLs)
- Media (images and their descriptions)
- Language (style, grammar, redundancy)

Examples:
  # Assess a single article
  qualscan assess القاهرة

  # Assess multiple articles
  qualscan assess القاهرة دمشق بغداد

  # Assess every article listed in a file (one title per line)
  qualscan assess --list articles.txt

  # Output JSON report to a file
  qualscan assess --json -o report.json القاهرة

  # Assess against a different wiki from the config file
  qualscan assess --wiki test القاهرة

Configuration file (.qualscan) example:
  wikis:
    test:
      api_url: https://test.wikipedia.org/w/api.php
      user_agent: qualscan-staging/1.0`,
		Args: cobra.ArbitraryArgs,
		RunE: runAssessCmd,
	}

	// API flags
	cmd.Flags().StringP("api-url", "a", config.DefaultAPIURL,
		"MediaWiki action API endpoint")
	cmd.Flags().StringP("wiki", "w", "",
		"Named wiki profile from the configuration file")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each API request")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent assessments")
	cmd.Flags().StringP("list", "l", "",
		"File with article titles to assess, one per line")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .qualscan in current or home directory)")

	// Assessment flags
	cmd.Flags().Bool("skip-rules", false,
		"Skip fetching the on-wiki grammar rule page and use built-in rules")
	cmd.Flags().Bool("no-save", false,
		"Do not save the assessment to the local history database")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAssessCmd executes the assess command.
func runAssessCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAssess(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load wiki profiles from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use an empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.WikiProfiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.WikiProfiles = &config.File{
			Wikis: make(map[string]config.WikiConfig),
		}
	}

	// Profile applies before the explicit --api-url flag, so the flag
	// wins when both are given.
	wiki, err := cmd.Flags().GetString("wiki")
	if err != nil {
		return nil, err
	}
	cfg.ApplyWikiProfile(wiki)

	if cmd.Flags().Changed("api-url") {
		cfg.APIURL, err = cmd.Flags().GetString("api-url")
		if err != nil {
			return nil, err
		}
	}

	cfg.SkipRulePage, err = cmd.Flags().GetBool("skip-rules")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments plus the optional title list file
	cfg.Titles = args

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		listed, err := readTitleList(listPath)
		if err != nil {
			return nil, err
		}
		cfg.Titles = append(cfg.Titles, listed...)
	}

	return cfg, nil
}

// readTitleList reads article titles from a file, one per line.
// Empty lines and lines starting with # are skipped.
func readTitleList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open title list: %w", err)
	}
	defer f.Close()

	var titles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read title list: %w", err)
	}

	return titles, nil
}

// runAssess executes the assessment.
func runAssess(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Titles) == 0 {
		return errors.New("no articles provided (specify one or more titles as arguments)")
	}

	logger.Info("starting assessment",
		"articles", cfg.Titles,
		"apiURL", cfg.APIURL,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the history database if saving is enabled
	var store *history.Store
	if cfg.SaveToDB {
		var err error
		store, err = history.Open(cfg.DBDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	client := fetch.NewClient(
		&http.Client{Timeout: cfg.Timeout},
		fetch.WithAPIURL(cfg.APIURL),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	// Use the batch processor for parallel assessment if multiple articles
	if len(cfg.Titles) > 1 && cfg.BatchSize > 1 {
		return runBatchAssess(ctx, cfg, client, store, logger)
	}

	return runSequentialAssess(ctx, cfg, client, store, logger)
}

// runSequentialAssess assesses articles one at a time.
func runSequentialAssess(ctx context.Context, cfg *config.Config, client *fetch.Client, store *history.Store, logger *slog.Logger) error {
	for _, title := range cfg.Titles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipeline(client, logger, cfg)
		a := pipeline.NewAssessment(title)

		fmt.Printf("Assessing %s...\n", title)
		startTime := time.Now()

		if err := p.Execute(ctx, a); err != nil {
			logger.Error("assessment failed", "article", title, "error", err)
			fmt.Fprintf(os.Stderr, "Assessment error for %s: %v\n", title, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Assessment completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, a.Result); err != nil {
			logger.Error("report failed", "article", title, "error", err)
		}

		if err := saveAssessment(ctx, store, a.Result, logger); err != nil {
			logger.Error("failed to save assessment", "article", title, "error", err)
		}
	}

	return nil
}

// runBatchAssess assesses multiple articles concurrently using BatchProcessor.
func runBatchAssess(ctx context.Context, cfg *config.Config, client *fetch.Client, store *history.Store, logger *slog.Logger) error {
	fmt.Printf("Starting batch assessment of %d articles (concurrency: %d)...\n\n",
		len(cfg.Titles), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return createPipeline(client, logger, cfg)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Titles, func(a *pipeline.Assessment, index int) {
		mu.Lock()
		defer mu.Unlock()

		if a.Error != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Assessment failed: %s: %v\n",
				index+1, len(cfg.Titles), a.Title, a.Error)
			return
		}

		fmt.Printf("[%d/%d] Assessment completed: %s\n", index+1, len(cfg.Titles), a.Title)

		if err := outputReport(cfg, a.Result); err != nil {
			logger.Error("report failed", "article", a.Title, "error", err)
		}

		if err := saveAssessment(ctx, store, a.Result, logger); err != nil {
			logger.Error("failed to save assessment", "article", a.Title, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch assessment completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// createPipeline creates the assessment pipeline for one run.
func createPipeline(client *fetch.Client, logger *slog.Logger, cfg *config.Config) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineSkipRulePage(cfg.SkipRulePage),
	}

	return pipeline.DefaultPipeline(client, pipelineOpts, configOpts...)
}

// outputReport outputs the assessment in the requested format.
func outputReport(cfg *config.Config, result *model.FinalResult) error {
	if result == nil {
		return nil
	}

	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full result with version metadata)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(result)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(result)
		return err
	}

	// Human-readable report (default)
	writer := report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(result)
	return err
}

// saveAssessment saves the assessment to the history database if enabled.
// If store is nil, this function is a no-op.
func saveAssessment(ctx context.Context, store *history.Store, result *model.FinalResult, logger *slog.Logger) error {
	if store == nil || result == nil {
		return nil
	}

	if err := store.SaveAssessment(ctx, result); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	logger.Info("assessment saved", "article", result.Title, "total", result.Total)
	return nil
}
