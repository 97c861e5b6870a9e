// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/poiesic/courserec"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "courserec",
		Usage: "Recommend courses similar to a search term",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "recommend",
				Usage:     "Print recommendations for a course name or keyword",
				ArgsUsage: "<course name>",
				Action:    recommendCommand,
				Flags: append(sourceFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of recommendations (default from config)",
					},
				),
			},
			{
				Name:   "batch",
				Usage:  "Answer one query per line and write JSON lines",
				Action: batchCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "File with one query per line, or - for stdin",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "File to write JSON lines to, or - for stdout",
						Value:   "-",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of recommendations per query (default from config)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent workers (default from config)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N queries (default from config)",
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve recommendations over HTTP",
				Action: serveCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Address to listen on (default from config)",
					},
				),
			},
			{
				Name:   "convert",
				Usage:  "Convert a JSON or YAML export into an artifact file",
				Action: convertCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Export file (.json, .yaml or .yml)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Artifact file to write",
						Value:   artifact.DefaultPath,
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write the artifacts as a JSON or YAML export",
				Action: exportCommand,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Export file to write (.json, .yaml or .yml)",
						Required: true,
					},
				),
			},
			{
				Name:   "import",
				Usage:  "Copy an artifact file into a BadgerDB store",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "artifact",
						Aliases: []string{"a"},
						Usage:   "Artifact file to read",
						Value:   artifact.DefaultPath,
					},
					&cli.StringFlag{
						Name:     "store",
						Aliases:  []string{"s"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Print a summary of the artifacts",
				Action: inspectCommand,
				Flags:  sourceFlags(),
			},
		},
	}
}

// sourceFlags selects where the artifacts are read from. Both default to
// the config file.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "artifact",
			Aliases: []string{"a"},
			Usage:   "Artifact file to read",
		},
		&cli.StringFlag{
			Name:    "store",
			Aliases: []string{"s"},
			Usage:   "Path to BadgerDB database directory",
		},
	}
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg

	level := cfg.LogLevel()
	if c.IsSet("log-level") {
		level, err = config.ParseLevel(c.String("log-level"))
		if err != nil {
			return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
		}
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func loadedConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// openCatalog builds a catalog from the source flags, falling back to the
// config. Explicit --artifact and --store together are rejected.
func openCatalog(c *cli.Context, opts ...courserec.CatalogOption) (*courserec.Catalog, error) {
	cfg := loadedConfig(c)
	opts = append(opts, courserec.WithLogger(slog.Default()))

	switch {
	case c.IsSet("artifact") && c.IsSet("store"):
		opts = append(opts,
			courserec.WithArtifactPath(c.String("artifact")),
			courserec.WithBadgerStore(c.String("store")))
	case c.IsSet("artifact"):
		opts = append(opts, courserec.WithArtifactPath(c.String("artifact")))
	case c.IsSet("store"):
		opts = append(opts, courserec.WithBadgerStore(c.String("store")))
	case cfg.Artifact.Store != "":
		opts = append(opts, courserec.WithBadgerStore(cfg.Artifact.Store))
	default:
		opts = append(opts, courserec.WithArtifactPath(cfg.Artifact.Path))
	}

	catalog, err := courserec.NewCatalog(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifacts: %w", err)
	}
	return catalog, nil
}

// intFlag returns the flag value when it was given, else fallback.
func intFlag(c *cli.Context, name string, fallback int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	return fallback
}
