// Command connect runs scenario files and prints their results as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/config"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/injector"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/scenario"
	"github.com/spikerwork/factorio-learning-environment-sub001/pkg/concurrent"
)

type fileResult struct {
	File   string           `json:"file"`
	Result *scenario.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	workers := flag.Int("workers", 0, "scenarios run in parallel (default from config)")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scenario.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := injector.InitializeRunner(cfg)
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	files := flag.Args()
	results, errs := concurrent.ParallelMap(ctx, files, cfg.Batch.Workers, func(ctx context.Context, path string) (*scenario.Result, error) {
		doc, err := scenario.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return runner.Run(ctx, doc)
	})

	out := make([]fileResult, len(files))
	failed := false
	for i, path := range files {
		out[i] = fileResult{File: path, Result: results[i]}
		if errs[i] != nil {
			out[i].Error = errs[i].Error()
			failed = true
			logger.Warn("scenario failed", log.String("file", path), log.Error(errs[i]))
		}
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing results:", err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}
