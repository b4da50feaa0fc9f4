// Package main is the caselaw CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/kwabena/caselaw/internal/cache"
	"github.com/kwabena/caselaw/internal/config"
	"github.com/kwabena/caselaw/internal/corpus"
	"github.com/kwabena/caselaw/internal/models"
	"github.com/kwabena/caselaw/internal/query"
	"github.com/kwabena/caselaw/internal/server"
	"github.com/kwabena/caselaw/internal/wikidata"
	"github.com/kwabena/caselaw/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/caselaw/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "filter":
		runFilter()
	case "version", "--version", "-v":
		fmt.Printf("caselaw version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (cache hits, corpus refreshes, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	corpusStore := cache.New[[]models.Case](2)
	resultStore := cache.New[*models.PageResult](cfg.Cache.Capacity)

	client := wikidata.NewClient(&cfg.Wikidata, logger)
	source := corpus.NewCachedSource(client, corpusStore, cfg.Cache.CorpusTTL(), &cfg.Breaker, logger)
	engine := query.NewEngine(source, resultStore, cfg.Cache.QueryTTL(), logger)
	srv := server.NewServer(engine, resultStore, corpusStore, &cfg.Server, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Drop cached responses when the config file changes so new TTLs do not
	// apply to entries written under the old ones. Server address changes
	// still need a restart.
	watcher := config.NewWatcher(resolvedConfigPath, func(_ *config.Config) {
		corpusStore.Clear()
		resultStore.Clear()
		logger.Info("caches cleared after config reload; restart to apply server settings")
	}, logger)
	if err := watcher.Start(ctx); err != nil {
		logger.Warn("config watcher failed to start", zap.Error(err))
	}
	defer watcher.Stop()

	go runSweeper(ctx, cfg.Cache.SweepInterval(), corpusStore, resultStore, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// runSweeper removes expired entries from both caches on a fixed interval,
// keeping peak memory bounded even when request volume is low.
func runSweeper(ctx context.Context, interval time.Duration, corpusStore *cache.Store[[]models.Case], resultStore *cache.Store[*models.PageResult], logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := corpusStore.SweepExpired() + resultStore.SweepExpired()
			if removed > 0 {
				logger.Debug("cache sweep", zap.Int("removed", removed))
			}
		}
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverAddr := fs.String("server", "http://localhost:9090", "server address")
	page := fs.Int("page", 1, "result page")
	limit := fs.Int("limit", query.DefaultLimit, "results per page (max 50)")
	_ = fs.Parse(os.Args[2:])

	q := buildQueryText(fs.Args())
	target := fmt.Sprintf("%s/search?%s", *serverAddr, url.Values{
		"q":     {q},
		"page":  {fmt.Sprint(*page)},
		"limit": {fmt.Sprint(*limit)},
	}.Encode())

	var resp struct {
		Success    bool              `json:"success"`
		Error      string            `json:"error"`
		Results    []models.Case     `json:"results"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := getJSON(target, &resp); err != nil {
		fmt.Printf("Search failed: %v\n", err)
		os.Exit(1)
	}
	if !resp.Success {
		fmt.Printf("Search failed: %s\n", resp.Error)
		os.Exit(1)
	}
	printResults(resp.Results, resp.Pagination)
}

func runFilter() {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	serverAddr := fs.String("server", "http://localhost:9090", "server address")
	keyword := fs.String("keyword", "", "keyword to match in title, description, citation, or court")
	year := fs.String("year", "", "decision year (1900 to next year)")
	judge := fs.String("judge", "", "judge name substring")
	caseType := fs.String("type", "", "case type (criminal, civil, constitutional, ...)")
	page := fs.Int("page", 1, "result page")
	limit := fs.Int("limit", query.DefaultLimit, "results per page (max 50)")
	_ = fs.Parse(os.Args[2:])

	target := fmt.Sprintf("%s/filter?%s", *serverAddr, url.Values{
		"keyword": {*keyword},
		"year":    {*year},
		"judge":   {*judge},
		"type":    {*caseType},
		"page":    {fmt.Sprint(*page)},
		"limit":   {fmt.Sprint(*limit)},
	}.Encode())

	var resp struct {
		Success    bool              `json:"success"`
		Error      string            `json:"error"`
		Results    []models.Case     `json:"results"`
		Count      int               `json:"count"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := getJSON(target, &resp); err != nil {
		fmt.Printf("Filter failed: %v\n", err)
		os.Exit(1)
	}
	if !resp.Success {
		fmt.Printf("Filter failed: %s\n", resp.Error)
		os.Exit(1)
	}
	printResults(resp.Results, resp.Pagination)
}

// buildQueryText joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQueryText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func getJSON(target string, into interface{}) error {
	httpClient := &http.Client{Timeout: 60 * time.Second}
	resp, err := httpClient.Get(target)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(into)
}

func printResults(results []models.Case, p models.Pagination) {
	if len(results) == 0 {
		fmt.Println("No cases found.")
		return
	}
	for i, c := range results {
		fmt.Printf("%d. %s\n", (p.CurrentPage-1)*p.ItemsPerPage+i+1, c.Title)
		fmt.Printf("   %s | %s | %s\n", c.Citation, c.Date, c.Court)
		fmt.Printf("   %s\n", utils.Truncate(c.Description, 120))
		if c.Judges != models.JudgesUnavailable {
			fmt.Printf("   Judges: %s\n", c.Judges)
		}
	}
	fmt.Printf("\nPage %d of %d (%d cases total)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func printUsage() {
	fmt.Println(`caselaw - Supreme Court of Ghana case search

Usage:
  caselaw server [-config path] [-debug]     Run the HTTP API server
  caselaw search [flags] <query>             Search cases by keyword
  caselaw filter [flags]                     Filter cases by criteria
  caselaw version                            Print version
  caselaw help                               Show this help

Examples:
  caselaw server -config ./config.yaml
  caselaw search human rights
  caselaw filter -year 2020 -type constitutional
  caselaw filter -judge Akuffo -limit 50`)
}
