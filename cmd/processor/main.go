package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"transcriptcli/internal/config"
	"transcriptcli/internal/dataprocessing"
	"transcriptcli/internal/exporter"
	"transcriptcli/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory of .txt transcript documents (defaults to the configured input dir)")
	outDir := flag.String("out", "", "output directory for the CSV tables (defaults to the configured output dir)")
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := run(*inDir, *outDir, *configFile); err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(inDir, outDir, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if inDir == "" {
		inDir = cfg.Paths.InputDir
	}
	if outDir == "" {
		outDir = cfg.Paths.OutputDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	runID := infrastructure.NewRunID()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "run started",
		slog.String("input_dir", inDir),
		slog.String("output_dir", outDir))

	result, err := dataprocessing.NewProcessor(logger, cfg).Process(ctx, inDir)
	if err != nil {
		return err
	}

	if err := exporter.NewService(logger, cfg.Export).Export(ctx, result, outDir); err != nil {
		return err
	}

	logger.InfoContext(ctx, "run finished",
		slog.Int("documents", result.Documents),
		slog.Int("students", len(result.Students)),
		slog.Int("skipped_documents", result.Issues.SkippedDocuments),
		slog.Int("issues", len(result.Issues.Issues)),
		slog.Int("unmapped_subjects", result.Issues.UnmappedSubjects))

	// Skipped documents are reported, not fatal: the run still completes.
	return nil
}
