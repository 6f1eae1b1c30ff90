// Battle simulator: plays scripted battle scenarios against a species/move catalog.
//
// Usage:
//
//	go run ./cmd/battlesim                      # run every scenario in scenario_dir
//	go run ./cmd/battlesim run a.yaml b.yaml    # run only the given scenario files
//	go run ./cmd/battlesim import-catalog       # copy catalog_path into PostgreSQL
//	go run ./cmd/battlesim export-catalog out.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/monbattle/internal/config"
)

const ConfigPath = "config/battlesim.yaml"

type command struct {
	name string
	desc string
	run  func(ctx context.Context, cfg config.Simulator, args []string) error
}

var commands = []command{
	{"run", "play scenarios (default: every file in scenario_dir)", runScenarios},
	{"import-catalog", "load catalog_path and store it in the database", importCatalog},
	{"export-catalog", "write the database catalog as YAML to the given path or stdout", exportCatalog},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfgPath := ConfigPath
	if p := os.Getenv("MONBATTLE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("config loaded",
		"catalog_source", cfg.CatalogSource,
		"scenario_dir", cfg.ScenarioDir,
		"parallelism", cfg.Parallelism)

	name := "run"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, cfg, args)
		}
	}
	printUsage()
	return fmt.Errorf("unknown command %q", name)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: battlesim [command] [args...]")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", c.name, c.desc)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
