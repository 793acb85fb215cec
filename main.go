package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"iconmaker/config"
	"iconmaker/database"
	"iconmaker/imageprocessor"
	"iconmaker/logging"
	"iconmaker/metrics"
	"iconmaker/scanner"
	"iconmaker/signalhandler"
	"iconmaker/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	program := filepath.Base(os.Args[0])
	args := utils.ParseArguments(argv)

	if args["command"] == "help" {
		utils.PrintUsage(os.Stdout, program)
		return 0
	}

	cfg, err := config.FromArguments(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		utils.PrintUsage(os.Stderr, program)
		return 2
	}

	if cfg.DebugMode {
		if err := logging.SetupLogger(cfg.LogPath); err != nil {
			logging.LogWarning("Failed to setup debug log: %v", err)
		} else {
			fmt.Printf("Debug mode enabled. Logging to: %s\n", cfg.LogPath)
		}
	}
	defer logging.CloseLogger()

	runID := uuid.NewString()
	logging.SetRunID(runID)
	logging.DebugLog("Configuration: %s", cfg)

	ctx, cancel := signalhandler.SetupHandler()
	defer cancel()

	backend, err := imageprocessor.NewBackend(cfg.Backend, cfg.TransformOptions())
	if err != nil {
		logging.LogError(err, "Cannot start backend")
		return 1
	}

	var db *sql.DB
	if cfg.ManifestPath != "" {
		db, err = database.InitDatabase(cfg.ManifestPath)
		if err != nil {
			logging.LogError(err, "Cannot open manifest %s", cfg.ManifestPath)
			return 1
		}
		defer db.Close()
	}

	var recorder *metrics.Recorder
	if cfg.MetricsPath != "" {
		recorder = metrics.NewRecorder()
	}

	s, err := scanner.New(db, scanner.Options{
		SourceDir:  cfg.SourceDir,
		DestDir:    cfg.DestDir,
		Extensions: cfg.Extensions,
		Collision:  cfg.Collision,
		OnError:    cfg.OnError,
		Force:      cfg.Force,
		Backend:    backend,
		Metrics:    recorder,
		RunID:      runID,
	})
	if err != nil {
		logging.LogError(err, "Cannot start conversion")
		return 1
	}

	report, err := s.Run(ctx)
	if err == nil && cfg.Command == config.CommandWatch {
		err = s.Watch(ctx, cfg.Settle, report)
	}
	writeMetrics(recorder, cfg.MetricsPath)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logging.LogWarning("Interrupted with %d files processed", len(report.Results))
			return 130
		}
		logging.LogError(err, "Conversion of %s failed", cfg.SourceDir)
		return 1
	}

	scanner.PrintCompletionStats(os.Stdout, report)
	if db != nil {
		printManifestStats(db)
	}

	if report.Failed > 0 {
		return 1
	}
	return 0
}

func writeMetrics(recorder *metrics.Recorder, path string) {
	if err := recorder.WriteTextfile(path); err != nil {
		logging.LogWarning("%v", err)
	}
}

func printManifestStats(db *sql.DB) {
	stats, err := database.GetRunStats(db)
	if err != nil {
		logging.LogWarning("Cannot read manifest totals: %v", err)
		return
	}
	fmt.Printf("\nManifest:\n")
	fmt.Printf("- Sources converted: %d\n", stats.Conversions)
	fmt.Printf("- Unique contents: %d\n", stats.UniqueSources)
	fmt.Printf("- Runs recorded: %d\n", stats.Runs)
	if stats.LastRun != nil {
		started, err := time.Parse(time.RFC3339, stats.LastRun.StartedAt)
		if err == nil {
			fmt.Printf("- Last run: %s\n", started.Local().Format("2006-01-02 15:04:05"))
		}
	}
}
