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
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v2"

	nurseryvisits "github.com/chiilog/nursery-visits"
	"github.com/chiilog/nursery-visits/core"
)

// envConfig holds settings read from the environment; flags override them.
type envConfig struct {
	DBPath string `env:"NURSERY_DB" envDefault:"nursery-data"`
}

func main() {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	app := &cli.App{
		Name:  "nurseryctl",
		Usage: "Inspect and edit the local nursery visit store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the database directory (env NURSERY_DB)",
				Value:   cfg.DBPath,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all nurseries with their sessions and questions",
				Action: listCommand,
			},
			{
				Name:   "add",
				Usage:  "Add a nursery",
				Action: addNurseryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Nursery name", Required: true},
					&cli.StringFlag{Name: "address", Usage: "Street address"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "website", Usage: "Website URL"},
					&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
				},
			},
			{
				Name:  "session",
				Usage: "Manage visit sessions",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a visit session to a nursery",
						Action: addSessionCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "nursery", Usage: "Nursery id", Required: true},
							&cli.StringFlag{Name: "date", Usage: "Visit date (YYYY-MM-DD)"},
							&cli.StringFlag{Name: "status", Usage: "planned, completed, or cancelled", Value: string(core.SessionStatusPlanned)},
							&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
						},
					},
					{
						Name:   "insight",
						Usage:  "Record an insight on a visit session",
						Action: addInsightCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "session", Usage: "Session id", Required: true},
							&cli.StringFlag{Name: "text", Usage: "Insight text", Required: true},
						},
					},
				},
			},
			{
				Name:  "question",
				Usage: "Manage visit questions",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a question to a visit session",
						Action: addQuestionCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "nursery", Usage: "Nursery id", Required: true},
							&cli.StringFlag{Name: "session", Usage: "Session id", Required: true},
							&cli.StringFlag{Name: "text", Usage: "Question text", Required: true},
							&cli.StringFlag{Name: "category", Usage: "Category label"},
							&cli.StringFlag{Name: "priority", Usage: "high, medium, or low"},
							&cli.IntFlag{Name: "order", Usage: "Display order index"},
						},
					},
					{
						Name:   "answer",
						Usage:  "Save the answer to a question",
						Action: answerQuestionCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "nursery", Usage: "Nursery id", Required: true},
							&cli.StringFlag{Name: "session", Usage: "Session id", Required: true},
							&cli.StringFlag{Name: "question", Usage: "Question id", Required: true},
							&cli.StringFlag{Name: "answer", Usage: "Answer text (empty clears the answer)", Required: true},
							&cli.StringFlag{Name: "by", Usage: "Who answered"},
						},
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search nurseries, sessions, and questions",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "max", Usage: "Maximum number of hits (0 = unlimited)", Value: 20},
				},
			},
			{
				Name:   "export",
				Usage:  "Export the store to an archive file",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file", Required: true},
				},
			},
			{
				Name:      "import",
				Usage:     "Import one or more archive files",
				ArgsUsage: "<file>...",
				Action:    importCommand,
			},
			{
				Name:  "consent",
				Usage: "Manage the analytics consent record",
				Subcommands: []*cli.Command{
					{
						Name:   "status",
						Usage:  "Show the stored consent record and whether it is still valid",
						Action: consentStatusCommand,
					},
					{
						Name:   "accept",
						Usage:  "Record analytics consent",
						Action: consentAcceptCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "analytics", Usage: "Allow Google Analytics", Value: true},
							&cli.BoolFlag{Name: "clarity", Usage: "Allow Microsoft Clarity", Value: true},
						},
					},
					{
						Name:   "decline",
						Usage:  "Record declined consent",
						Action: consentDeclineCommand,
					},
					{
						Name:   "revoke",
						Usage:  "Remove the stored consent record",
						Action: consentRevokeCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase opens the store configured by the global --db flag.
func openDatabase(c *cli.Context) (*nurseryvisits.Database, error) {
	return nurseryvisits.NewDatabase(c.String("db"))
}

// parseVisitDate parses an optional YYYY-MM-DD flag value.
func parseVisitDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return &date, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
