//nolint:wrapcheck
package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/session"
)

const defaultOutputFile = "scribe-report.jsonl"

var errReportArgs = errors.New("report takes no arguments")

func reportCommand() *cli.Command {
	flags := slices.Concat(session.Flags(), session.ScopeFlags(), []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path of the JSONL report to write (a .gz copy is written alongside)",
			Value:   defaultOutputFile,
		},
		&cli.BoolFlag{
			Name:  "redact-comments",
			Usage: "Strip comment authors and bodies from the report",
		},
	})

	return &cli.Command{
		Name:  "report",
		Usage: "Collect every security hotspot of a project and write a JSONL report",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 0 {
				return fmt.Errorf("%w: got %d", errReportArgs, cmd.NArg())
			}

			sess, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}

			return runReport(ctx, sess, cmd.String("output"), cmd.Bool("redact-comments"))
		},
	}
}

func runReport(ctx context.Context, sess *session.Session, outputFile string, redact bool) error {
	startTime := time.Now()

	languages, err := sess.Languages(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Loaded %d languages from %s\n", languages.Len(), sess.Config.ServerURL)

	collector := sess.Collector(func(status scribe.Status, page, pages int) {
		fmt.Fprintf(os.Stderr, "[%s %d/%d]\n", status, page, pages)
	})

	sweep, err := collector.CollectAll(ctx)
	if err != nil {
		return err
	}

	header := RecordHeader{
		Project:     sess.Config.Project,
		Branch:      sess.Config.Branch,
		Server:      sess.Config.ServerURL,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Counts: map[string]int{
			scribe.StatusToReview.String(): len(sweep.ToReview),
			scribe.StatusReviewed.String(): len(sweep.Reviewed),
		},
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err = writeReport(out, header, sweep.All(), languages, redact); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}

	if err := compressFile(outputFile); err != nil {
		slog.Error("compressing report", "error", err)
	}

	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "\nDone: %d hotspots (%d to review, %d reviewed) in %s\n",
		sweep.Len(), len(sweep.ToReview), len(sweep.Reviewed), elapsed.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Report written to %s (and %s.gz)\n", outputFile, outputFile)
	fmt.Fprintln(os.Stderr)

	return runDigest(outputFile, "")
}

// writeReport writes the header line followed by one line per hotspot, in collection order.
func writeReport(
	writer io.Writer,
	header RecordHeader,
	hotspots []scribe.Hotspot,
	languages *scribe.Languages,
	redact bool,
) error {
	enc := json.NewEncoder(writer)

	if err := enc.Encode(header); err != nil {
		return err
	}

	for idx := range hotspots {
		record := toRecord(&hotspots[idx], languages)

		if redact {
			record.Comments = redactComments(record.Comments)
			record.Author = ""
		}

		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("hotspot %s: %w", record.Key, err)
		}
	}

	return nil
}

func toRecord(hotspot *scribe.Hotspot, languages *scribe.Languages) Record {
	comments := make([]RecordComment, 0, len(hotspot.Comments))
	for _, comment := range hotspot.Comments {
		comments = append(comments, RecordComment{
			Login:     comment.Login,
			Markdown:  comment.Markdown,
			CreatedAt: comment.CreatedAt,
		})
	}

	return Record{
		Key:                      hotspot.Key,
		Status:                   hotspot.Status.String(),
		Rule:                     hotspot.Rule,
		Severity:                 hotspot.Severity,
		Language:                 hotspot.Language,
		LanguageName:             languages.Resolve(hotspot.Language),
		Component:                hotspot.Component,
		Line:                     hotspot.Line,
		Message:                  hotspot.Message,
		SecurityCategory:         hotspot.SecurityCategory,
		VulnerabilityProbability: hotspot.VulnerabilityProbability,
		Author:                   hotspot.Author,
		CreationDate:             hotspot.CreationDate,
		UpdateDate:               hotspot.UpdateDate,
		Comments:                 comments,
		Resolution:               hotspot.Resolution,
	}
}

// redactComments keeps only comment timestamps, so review activity can still be counted.
func redactComments(comments []RecordComment) []RecordComment {
	redacted := make([]RecordComment, 0, len(comments))
	for _, comment := range comments {
		redacted = append(redacted, RecordComment{CreatedAt: comment.CreatedAt})
	}

	return redacted
}

func compressFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // reading our own output file
	if err != nil {
		return err
	}

	gzFile, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer gzFile.Close()

	gzWriter := gzip.NewWriter(gzFile)

	if _, err := gzWriter.Write(data); err != nil {
		return err
	}

	return gzWriter.Close()
}
