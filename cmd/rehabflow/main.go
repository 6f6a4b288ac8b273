// Package main is the rehabflow CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rehabflow/rehabflow/internal/cli"
	"github.com/rehabflow/rehabflow/internal/config"
	"github.com/rehabflow/rehabflow/internal/matching"
	"github.com/rehabflow/rehabflow/internal/models"
	"github.com/rehabflow/rehabflow/internal/pipeline"
	"github.com/rehabflow/rehabflow/internal/search"
	"github.com/rehabflow/rehabflow/internal/server"
	"github.com/rehabflow/rehabflow/internal/storage"
	"github.com/rehabflow/rehabflow/internal/watcher"
	"github.com/rehabflow/rehabflow/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/rehabflow/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "rehabflow serve" from the project dir picks up the
// project's config. Returns the config and the path that was actually loaded.
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
	case "serve":
		runServe()
	case "process":
		runProcess()
	case "search":
		runSearch()
	case "missions":
		runMissions()
	case "intake":
		runIntake()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("rehabflow version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Index    *search.PlanIndex
	Pipeline *pipeline.Pipeline
	Matcher  *matching.Matcher
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	index, err := search.NewPlanIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize plan index: %w", err)
	}
	return &Components{
		Storage:  store,
		Index:    index,
		Pipeline: pipeline.New(&cfg.Missions, logger),
		Matcher:  matching.NewMatcher(&cfg.Matching),
	}, nil
}

// ingestPlan runs the pipeline over a plan file and persists the plan, its
// missions, and its calendar events, then indexes the plan text.
func ingestPlan(ctx context.Context, c *Components, path, patientID, title string, start time.Time, points int) (*models.TreatmentPlan, *models.Result, error) {
	result, err := c.Pipeline.Process(pipeline.Request{
		Path:          path,
		PatientID:     patientID,
		StartDate:     start,
		DefaultPoints: points,
	})
	if err != nil {
		return nil, nil, err
	}
	plan := &models.TreatmentPlan{
		PatientID:  patientID,
		Title:      title,
		SourcePath: path,
		Text:       result.Text,
		Result:     result,
	}
	if err := c.Storage.CreatePlan(ctx, plan); err != nil {
		return nil, nil, fmt.Errorf("save plan: %w", err)
	}
	for _, m := range result.Missions {
		m.TreatmentPlanID = plan.ID
	}
	if err := c.Storage.SaveGenerated(ctx, result.Missions, result.Events); err != nil {
		return nil, nil, fmt.Errorf("save missions: %w", err)
	}
	if err := c.Index.Index(ctx, plan); err != nil {
		return plan, result, fmt.Errorf("index plan: %w", err)
	}
	return plan, result, nil
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (intake events, pipeline runs, etc.)")
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

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(
		cfg.Intake.Directories,
		cfg.Intake.Extensions,
		cfg.Intake.RecursiveOrDefault(),
		func(path string) {
			// Intake files are named <patient-id>.<ext>.
			patientID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if _, _, err := ingestPlan(context.Background(), components, path, patientID, "", time.Time{}, 0); err != nil {
				logger.Warn("intake plan ingestion failed", zap.String("path", path), zap.Error(err))
			}
		},
		func(path string) {
			logger.Debug("intake file removed, stored plans kept", zap.String("path", path))
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start intake watcher", zap.Error(err))
	}
	watchSvc.SyncExistingFiles()

	srv := server.NewServer(
		components.Pipeline,
		components.Matcher,
		components.Storage,
		components.Index,
		cfg,
		logger,
	)
	srv.EnableIntake(watchSvc, resolvedConfigPath)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	watchSvc.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runProcess() {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	patientID := fs.String("patient", "", "patient id the plan belongs to (required)")
	title := fs.String("title", "", "plan title (default: file name)")
	startDate := fs.String("start", "", "schedule start date YYYY-MM-DD (default: today)")
	points := fs.Int("points", 0, "default mission points (0 = config default)")
	outPath := fs.String("out", "", "write the full result JSON to this file")
	save := fs.Bool("save", false, "persist the plan, missions, and events to storage")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: rehabflow process [flags] <plan-file>")
		os.Exit(1)
	}
	if *patientID == "" {
		fmt.Println("process: -patient is required")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	var start time.Time
	if *startDate != "" {
		start, err = time.Parse("2006-01-02", *startDate)
		if err != nil {
			fmt.Println("process: -start must be YYYY-MM-DD")
			os.Exit(1)
		}
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var result *models.Result
	if *save {
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize components", zap.Error(err))
		}
		defer components.Close()
		planTitle := *title
		if planTitle == "" {
			planTitle = filepath.Base(path)
		}
		plan, res, err := ingestPlan(context.Background(), components, path, *patientID, planTitle, start, *points)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
			os.Exit(1)
		}
		result = res
		fmt.Printf("Plan saved: %s\n", plan.ID)
	} else {
		pipe := pipeline.New(&cfg.Missions, logger)
		result, err = pipe.Process(pipeline.Request{
			Path:          path,
			PatientID:     *patientID,
			StartDate:     start,
			DefaultPoints: *points,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *outPath != "" {
		if err := pipeline.SaveResult(result, *outPath, "json"); err != nil {
			fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Result written: %s\n", *outPath)
	}
	if err := cli.WriteResult(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "rehabflow search query
// -limit 5" would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	limit := fs.Int("limit", 10, "number of results")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		fmt.Println("Usage: rehabflow search [flags] <query>")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var hits []cli.PlanHit
	if *serverURL != "" {
		// Use the HTTP API when the server is running (avoids a Bleve lock conflict).
		hits, err = searchViaHTTP(*serverURL, queryStr, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize components", zap.Error(err))
		}
		defer components.Close()

		ctx := context.Background()
		results, err := components.Index.Search(ctx, queryStr, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		for _, r := range results {
			hit := cli.PlanHit{PlanID: r.PlanID, Score: r.Score}
			if plan, err := components.Storage.GetPlan(ctx, r.PlanID); err == nil {
				hit.Title = plan.Title
				hit.PatientID = plan.PatientID
				hit.Snippet = plan.Text
			}
			hits = append(hits, hit)
		}
	}

	if err := cli.WritePlanHits(os.Stdout, queryStr, hits, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, query string, limit int) ([]cli.PlanHit, error) {
	body, err := json.Marshal(map[string]any{"query": query, "limit": limit})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var decoded struct {
		Results []search.Result `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	hits := make([]cli.PlanHit, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		hit := cli.PlanHit{PlanID: r.PlanID, Score: r.Score}
		if plan, err := planViaHTTP(serverURL, r.PlanID); err == nil {
			hit.Title = plan.Title
			hit.PatientID = plan.PatientID
			hit.Snippet = plan.Text
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func planViaHTTP(serverURL, id string) (*models.TreatmentPlan, error) {
	resp, err := http.Get(serverURL + "/api/v1/plans/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	var plan models.TreatmentPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func runMissions() {
	fs := flag.NewFlagSet("missions", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	date := fs.String("date", "", "calendar day YYYY-MM-DD (empty = all days)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: rehabflow missions [flags] <patient-id>")
		os.Exit(1)
	}
	patientID := fs.Arg(0)
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	var day time.Time
	if *date != "" {
		day, err = time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Println("missions: -date must be YYYY-MM-DD")
			os.Exit(1)
		}
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	missions, err := components.Storage.MissionsByPatient(context.Background(), patientID, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Mission query failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteMissions(os.Stdout, missions, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runIntake() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: rehabflow intake <add|remove|list> [path]")
		fmt.Println("  rehabflow intake add <path>     Add directory to intake watching")
		fmt.Println("  rehabflow intake remove <path>  Remove directory from intake watching")
		fmt.Println("  rehabflow intake list           List watched intake directories")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("intake", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[3:])
	switch sub {
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: rehabflow intake add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		body, _ := json.Marshal(map[string]any{"path": path, "sync": true})
		resp, err := http.Post(*serverURL+"/api/v1/intake/directories", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: rehabflow intake remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/intake/directories?path="+url.QueryEscape(path), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", path)
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/intake/directories")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Directories []string `json:"directories"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		for _, d := range out.Directories {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown intake subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// statusResponse is the shape of the GET /api/v1/status response.
type statusResponse struct {
	Plans          int64  `json:"plans"`
	Missions       int64  `json:"missions"`
	IndexedPlans   uint64 `json:"indexed_plans"`
	DiskUsageBytes *int64 `json:"disk_usage_bytes,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		ctx := context.Background()
		planCount, err := components.Storage.CountPlans(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count plans failed: %v\n", err)
			os.Exit(1)
		}
		missionCount, err := components.Storage.CountMissions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count missions failed: %v\n", err)
			os.Exit(1)
		}
		indexed, err := components.Index.Count()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Index count failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Plans:        planCount,
			Missions:     missionCount,
			IndexedPlans: indexed,
		}
		diskBytes, err := storage.DiskUsageBytes(
			cfg.Storage.DatabasePath,
			cfg.Storage.BleveIndexPath,
			cfg.Storage.ResultsDir,
		)
		if err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("plans:            %d   # stored treatment plans\n", status.Plans)
		fmt.Printf("missions:         %d   # generated missions\n", status.Missions)
		fmt.Printf("indexed_plans:    %d   # plans in the search index\n", status.IndexedPlans)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes: %d   # storage + index on disk\n", *status.DiskUsageBytes)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`rehabflow - treatment plan processing and patient matching

Usage:
  rehabflow serve [flags]                Start the HTTP server (with intake watching)
  rehabflow process [flags] <file>       Run a plan document through the pipeline
  rehabflow search [flags] <query>       Search stored treatment plans
  rehabflow missions [flags] <patient>   List a patient's missions
  rehabflow status [flags]               Show storage and index status
  rehabflow intake <add|remove|list>     Manage watched intake directories
  rehabflow version                      Show version
  rehabflow help                         Show this help

Serve Flags:
  --config string    Config file path (default: /usr/local/etc/rehabflow/config.yaml)
  --debug            Enable debug logging (intake events, pipeline runs, etc.)

Process Flags:
  --config string    Config file path
  --patient string   Patient id the plan belongs to (required)
  --title string     Plan title (default: file name)
  --start string     Schedule start date YYYY-MM-DD (default: today)
  --points int       Default mission points (0 = config default)
  --out string       Write the full result JSON to this file
  --save             Persist the plan, missions, and events to storage
  --output string    Output format: text or json (default: text)

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --limit int        Number of results (default: 10)
  --output string    Output format: text or json (default: text)

Missions Flags:
  --config string    Config file path
  --date string      Calendar day YYYY-MM-DD (empty = all days)
  --output string    Output format: text or json (default: text)

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Intake Flags:
  --server string    Server URL (default: http://localhost:8080)

Examples:
  rehabflow serve
  rehabflow process --patient ana --save plans/ana.txt
  rehabflow process --patient ana --out result.json plans/ana.txt
  rehabflow search doorway stretch
  rehabflow search --output json "shoulder"
  rehabflow missions --date 2026-03-02 ana
  rehabflow status
  rehabflow intake add /path/to/plans
  rehabflow intake list`)
}
