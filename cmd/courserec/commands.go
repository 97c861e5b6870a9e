package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/courserec"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/batch"
	"github.com/poiesic/courserec/server"
	"github.com/poiesic/courserec/storage/badger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

const blankQueryWarning = "⚠ Please enter a course name to get recommendations."

func recommendCommand(c *cli.Context) error {
	out := c.App.Writer

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(out, blankQueryWarning)
		return nil
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	limit := intFlag(c, "limit", loadedConfig(c).Recommend.Limit)
	lines, err := catalog.RecommendCourses(c.Context, query, limit)
	if err != nil {
		return fmt.Errorf("failed to recommend courses: %w", err)
	}

	fmt.Fprintln(out, "🎯 Recommended Courses:")
	for _, line := range lines {
		fmt.Fprintf(out, "✅ %s\n", line)
	}
	return nil
}

func batchCommand(c *cli.Context) error {
	ctx := c.Context
	cfg := loadedConfig(c)

	in, closeIn, err := openInput(c, c.String("input"))
	if err != nil {
		return err
	}
	defer closeIn()

	queries, err := batch.ReadQueries(in)
	if err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	// Load up front so a bad artifact fails the command instead of every query
	if _, err := catalog.Bundle(ctx); err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}

	runner, err := batch.NewRunner(catalog,
		batch.WithPoolSize(intFlag(c, "pool-size", cfg.Batch.PoolSize)),
		batch.WithLimit(intFlag(c, "limit", cfg.Recommend.Limit)),
		batch.WithProgress(c.App.ErrWriter, intFlag(c, "report-interval", cfg.Batch.ReportInterval)),
		batch.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch runner: %w", err)
	}
	defer runner.Release()

	fmt.Fprintf(c.App.ErrWriter, "Artifacts: %s\n", catalog.Location())
	fmt.Fprintf(c.App.ErrWriter, "Queries: %d\n", len(queries))
	fmt.Fprintln(c.App.ErrWriter)

	items, err := runner.Run(ctx, queries)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	out, closeOut, err := openOutput(c, c.String("output"))
	if err != nil {
		return err
	}
	if err := batch.WriteJSONL(out, items); err != nil {
		closeOut()
		return fmt.Errorf("failed to write results: %w", err)
	}
	return closeOut()
}

func serveCommand(c *cli.Context) error {
	cfg := loadedConfig(c)
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := server.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	catalog, err := openCatalog(c, courserec.WithMonitor(metrics))
	if err != nil {
		return err
	}
	defer catalog.Close()

	// The loader retries on the next query, so a failed warm-up is not fatal
	if _, err := catalog.Bundle(ctx); err != nil {
		slog.Warn("artifacts not loaded yet", "location", catalog.Location(), "err", err)
	}

	srv, err := server.New(catalog,
		server.WithLogger(slog.Default()),
		server.WithMetrics(reg, metrics),
		server.WithDefaultLimit(cfg.Recommend.Limit),
		server.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateWindow),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func convertCommand(c *cli.Context) error {
	input := c.String("input")
	output := c.String("output")

	format, err := artifact.FormatFromPath(input)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	start := time.Now()
	bundle, err := artifact.DecodeExport(f, format)
	if err != nil {
		return fmt.Errorf("failed to decode export: %w", err)
	}
	if err := artifact.WriteFile(output, bundle); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	slog.Info("artifact written", "input", input, "output", output, "elapsed", time.Since(start))
	return printStats(c.App.Writer, output, bundle)
}

func exportCommand(c *cli.Context) error {
	output := c.String("output")
	format, err := artifact.FormatFromPath(output)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	bundle, err := catalog.Bundle(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	if err := artifact.EncodeExport(f, bundle, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Exported %d courses from %s to %s\n", bundle.Len(), catalog.Location(), output)
	return nil
}

func importCommand(c *cli.Context) error {
	ctx := c.Context
	path := c.String("artifact")
	storePath := c.String("store")

	bundle, err := artifact.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	backend, err := badger.OpenBackend(storePath, false, badger.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewArtifactRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	if err := repo.SaveBundle(ctx, bundle); err != nil {
		return fmt.Errorf("failed to import artifact: %w", err)
	}

	meta, err := repo.GetMeta(ctx)
	if err != nil {
		return fmt.Errorf("failed to read store metadata: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %s into %s\n", path, storePath)
	fmt.Fprintf(c.App.Writer, "Courses: %d\n", meta.Courses)
	fmt.Fprintf(c.App.Writer, "Terms: %d\n", meta.Terms)
	fmt.Fprintf(c.App.Writer, "Fingerprint: %s\n", meta.Fingerprint)
	return nil
}

func inspectCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	bundle, err := catalog.Bundle(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}
	return printStats(c.App.Writer, catalog.Location(), bundle)
}

func printStats(w io.Writer, location string, bundle *artifact.Bundle) error {
	stats, err := bundle.Describe()
	if err != nil {
		return fmt.Errorf("failed to describe artifacts: %w", err)
	}

	fmt.Fprintf(w, "Location: %s\n", location)
	fmt.Fprintf(w, "Courses: %d (%d without a clean title)\n", stats.Courses, stats.MissingClean)
	fmt.Fprintf(w, "Terms: %d\n", stats.Terms)
	fmt.Fprintf(w, "Document-term nonzeros: %d\n", stats.DocumentTermNZ)
	fmt.Fprintf(w, "Similarity: %dx%d\n", bundle.Similarity.Rows, bundle.Similarity.Cols)
	fmt.Fprintf(w, "Fingerprint: %s\n", stats.Fingerprint)
	return nil
}

func openInput(c *cli.Context, path string) (io.Reader, func(), error) {
	if path == "-" {
		return c.App.Reader, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(c *cli.Context, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return c.App.Writer, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
		return nil
	}, nil
}
