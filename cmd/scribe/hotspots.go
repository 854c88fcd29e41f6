//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/session"
)

const statusAll = "all"

var errHotspotsArgs = errors.New("hotspots takes no arguments")

func hotspotsCommand() *cli.Command {
	flags := slices.Concat(session.Flags(), session.ScopeFlags(), []cli.Flag{
		&cli.StringFlag{
			Name:    "status",
			Aliases: []string{"s"},
			Usage:   "Review status to collect: to_review, reviewed, all",
			Value:   statusAll,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Output the canonical hotspot records instead of the grouped summary",
		},
	})

	return &cli.Command{
		Name:  "hotspots",
		Usage: "Collect the security hotspots of a project, enriched with rule severity, language and comments",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 0 {
				return fmt.Errorf("%w: got %d", errHotspotsArgs, cmd.NArg())
			}

			statuses, err := parseStatuses(cmd.String("status"))
			if err != nil {
				return err
			}

			sess, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}

			collector := sess.Collector(nil)
			sweep := &scribe.Sweep{}

			for _, status := range statuses {
				hotspots, err := collector.Collect(ctx, status)
				if err != nil {
					return err
				}

				if status == scribe.StatusReviewed {
					sweep.Reviewed = hotspots
				} else {
					sweep.ToReview = hotspots
				}
			}

			languages, err := sess.Languages(ctx)
			if err != nil {
				return err
			}

			return outputSweep(sess.Config.Project, sweep, languages, cmd.String("format"), cmd.Bool("raw"))
		},
	}
}

func parseStatuses(raw string) ([]scribe.Status, error) {
	if strings.EqualFold(strings.TrimSpace(raw), statusAll) {
		return []scribe.Status{scribe.StatusToReview, scribe.StatusReviewed}, nil
	}

	status, err := scribe.ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	return []scribe.Status{status}, nil
}
