// Package session turns connection flags and environment configuration into a ready client.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/config"
	"github.com/farcloser/scribe/internal/integration/sonarqube"
)

// Session is the resolved configuration and server client of one invocation.
type Session struct {
	Config config.Config
	Client *sonarqube.Client
}

// Flags returns the connection flags shared by every command talking to the server.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Dotenv file to read settings from",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:  "server",
			Usage: "Server URL (default: $" + config.SettingServerURL + " or http://localhost:9000)",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "User token (default: $" + config.SettingToken + ")",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Log remote calls to stderr",
		},
	}
}

// ScopeFlags returns the flags selecting what to collect.
func ScopeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "Project key (default: $" + config.SettingProject + ")",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch (default: $" + config.SettingBranch + ", or the main branch)",
		},
		&cli.StringFlag{
			Name:  "max-per-page",
			Usage: "Hotspots per search page (default: $" + config.SettingMaxPerPage + " or 500)",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "Number of hotspots enriched concurrently (default: $" + config.SettingWorkers + " or 1)",
		},
	}
}

// FromCommand loads configuration, applies flag overrides and builds the client.
func FromCommand(cmd *cli.Command) (*Session, error) {
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Load(cmd.String("env-file"))

	cfg.Override(config.SettingServerURL, cmd.String("server"))
	cfg.Override(config.SettingToken, cmd.String("token"))
	cfg.Override(config.SettingProject, cmd.String("project"))
	cfg.Override(config.SettingBranch, cmd.String("branch"))
	cfg.Override(config.SettingMaxPerPage, cmd.String("max-per-page"))

	if workers := cmd.Int("workers"); workers > 0 {
		cfg.Workers = workers
		cfg.Settings[config.SettingWorkers] = strconv.Itoa(workers)
	}

	client, err := sonarqube.New(cfg.ServerURL, sonarqube.WithToken(cfg.Token))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scribe.ErrConfiguration, err)
	}

	return &Session{Config: cfg, Client: client}, nil
}

// Collector returns a hotspot collector scoped by the session configuration.
func (s *Session) Collector(onPage func(status scribe.Status, page, pages int)) *scribe.Collector {
	return scribe.NewCollector(s.Client, s.Config.Settings, scribe.CollectorOptions{
		Project: s.Config.Project,
		Branch:  s.Config.Branch,
		Workers: s.Config.Workers,
		OnPage:  onPage,
	})
}

// Languages fetches the language registry of the server.
func (s *Session) Languages(ctx context.Context) (*scribe.Languages, error) {
	return scribe.LoadLanguages(ctx, s.Client)
}
