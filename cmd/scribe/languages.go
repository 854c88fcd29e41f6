//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/scribe/internal/session"
)

var errLanguagesArgs = errors.New("languages takes no arguments")

func languagesCommand() *cli.Command {
	flags := slices.Concat(session.Flags(), []cli.Flag{
		&cli.StringFlag{
			Name:  "resolve",
			Usage: "Print only the display name of this language key (? when unknown)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
	})

	return &cli.Command{
		Name:  "languages",
		Usage: "List the languages known by the server",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 0 {
				return fmt.Errorf("%w: got %d", errLanguagesArgs, cmd.NArg())
			}

			sess, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}

			languages, err := sess.Languages(ctx)
			if err != nil {
				return err
			}

			if key := cmd.String("resolve"); key != "" {
				_, err = fmt.Fprintln(os.Stdout, languages.Resolve(key))

				return err
			}

			formatter, err := format.GetFormatter(cmd.String("format"))
			if err != nil {
				return err
			}

			meta := make(map[string]any, languages.Len())
			for _, lang := range languages.All() {
				meta[lang.Key] = lang.Name
			}

			return formatter.PrintAll([]*format.Data{{
				Object: sess.Config.ServerURL,
				Meta:   map[string]any{"languages": meta},
			}}, os.Stdout)
		},
	}
}
