package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/monbattle/internal/battle"
	"github.com/udisondev/monbattle/internal/config"
	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/db"
	"github.com/udisondev/monbattle/internal/sim"
)

func runScenarios(ctx context.Context, cfg config.Simulator, args []string) error {
	var (
		cat       *data.MemoryCatalog
		scenarios []*sim.Scenario
	)

	// Catalog and scenarios are independent, load them in parallel
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cat, err = loadCatalog(gctx, cfg); err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if scenarios, err = loadScenarios(cfg, args); err != nil {
			return fmt.Errorf("loading scenarios: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	runner := sim.NewRunner(cat)
	results, err := runner.RunAll(ctx, scenarios, cfg.Parallelism)
	if err != nil {
		return fmt.Errorf("running scenarios: %w", err)
	}

	for _, res := range results {
		if err := printResult(os.Stdout, res); err != nil {
			return err
		}
	}
	return nil
}

func loadScenarios(cfg config.Simulator, paths []string) ([]*sim.Scenario, error) {
	if len(paths) == 0 {
		return sim.LoadScenarioDir(cfg.ScenarioDir)
	}
	scenarios := make([]*sim.Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := sim.LoadScenarioFile(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func loadCatalog(ctx context.Context, cfg config.Simulator) (*data.MemoryCatalog, error) {
	if cfg.CatalogSource == config.CatalogFromFile {
		return data.LoadCatalogFile(cfg.CatalogPath)
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return database.Catalog().Load(ctx)
}

func openDatabase(ctx context.Context, cfg config.Simulator) (*db.DB, error) {
	dsn := cfg.Database.DSN()
	if cfg.MigrateOnStart {
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")
	return database, nil
}

func importCatalog(ctx context.Context, cfg config.Simulator, args []string) error {
	path := cfg.CatalogPath
	if len(args) > 0 {
		path = args[0]
	}
	cat, err := data.LoadCatalogFile(path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Catalog().Save(ctx, cat); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	species, moves := cat.Counts()
	slog.Info("catalog imported", "path", path, "species", species, "moves", moves)
	return nil
}

func exportCatalog(ctx context.Context, cfg config.Simulator, args []string) error {
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	cat, err := database.Catalog().Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	raw, err := data.MarshalCatalog(cat)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(args[0], raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	slog.Info("catalog exported", "path", args[0])
	return nil
}

func printResult(w io.Writer, res *sim.Result) error {
	winner := "none"
	switch {
	case res.Over && res.Winner == battle.NoSide:
		winner = "draw"
	case res.Over:
		winner = fmt.Sprintf("side %d", res.Winner+1)
	}
	fmt.Fprintf(w, "== %s: %d turns, winner %s, digest %s\n", res.Scenario, res.Turns, winner, res.Digest)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, ev := range res.Events {
		switch ev.Kind {
		case battle.KindCustom:
			fmt.Fprintf(tw, "  %s\t\t\t%s\n", ev.Kind, ev.Description)
		case battle.KindFainted:
			fmt.Fprintf(tw, "  %s\t\t%s\t\n", ev.Kind, res.Ref(ev.Target))
		default:
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\n", ev.Kind, res.Ref(ev.Source), res.Ref(ev.Target), ev.Amount)
		}
	}
	for _, l := range res.Learned {
		fmt.Fprintf(tw, "  learn\t%s\tlv%d move %d\t%s\n", l.Ref, l.Outcome.Level, l.Outcome.MoveID, l.Outcome.Result)
	}
	for _, c := range res.Final {
		fmt.Fprintf(tw, "  final\t%s\t%s lv%d\t%d/%d HP\n", c.Ref, c.Name, c.Level, c.HP, c.MaxHP)
	}
	return tw.Flush()
}
