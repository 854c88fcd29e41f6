package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/farcloser/primordium/fault"
	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/scribe"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from a scribe JSONL report",
		ArgsUsage: "<report.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rule",
				Usage: "Show the hotspots raised by a specific rule (e.g., java:S2068)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("expected exactly one argument: path to report.jsonl")
			}

			return runDigest(cmd.Args().First(), cmd.String("rule"))
		},
	}
}

func runDigest(reportPath, ruleFilter string) error {
	lines, err := readReport(reportPath)
	if err != nil {
		return err
	}

	printDigest(os.Stdout, summarize(lines))

	if ruleFilter != "" {
		printRuleDetail(os.Stdout, lines, ruleFilter)
	}

	return nil
}

func readReport(path string) ([]digestLine, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer file.Close()

	return decodeReport(file)
}

// decodeReport reads hotspot lines from a JSONL report, skipping the header line.
func decodeReport(reader io.Reader) ([]digestLine, error) {
	var lines []digestLine

	scanner := bufio.NewScanner(reader)

	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		if len(strings.TrimSpace(scanner.Text())) == 0 {
			continue
		}

		var line digestLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", lineNumber, fault.ErrInvalidJSON, err)
		}

		if line.Key == "" {
			continue
		}

		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading report: %w", fault.ErrReadFailure, err)
	}

	return lines, nil
}

// digestSummary is the aggregated content of a report.
type digestSummary struct {
	Total          int
	ByStatus       map[string]int
	BySeverity     map[string]int
	ByLanguage     map[string]int
	ByResolution   map[string]int
	Rules          []*ruleBreakdown
	CommentsMean   float64
	CommentsMedian float64
	Uncommented    int
}

func summarize(lines []digestLine) digestSummary {
	summary := digestSummary{
		Total:        len(lines),
		ByStatus:     map[string]int{},
		BySeverity:   map[string]int{},
		ByLanguage:   map[string]int{},
		ByResolution: map[string]int{},
	}

	ruleStats := map[string]*ruleBreakdown{}
	comments := make([]float64, 0, len(lines))

	for _, line := range lines {
		summary.ByStatus[line.Status]++
		summary.BySeverity[line.Severity]++
		summary.ByLanguage[line.Language]++

		if line.Resolution != nil {
			summary.ByResolution[*line.Resolution]++
		}

		breakdown, ok := ruleStats[line.Rule]
		if !ok {
			breakdown = &ruleBreakdown{Rule: line.Rule}
			ruleStats[line.Rule] = breakdown
		}

		breakdown.Total++

		if line.Status == scribe.StatusReviewed.String() {
			breakdown.Reviewed++
		} else {
			breakdown.ToReview++
		}

		if len(line.Comments) == 0 {
			summary.Uncommented++
		}

		comments = append(comments, float64(len(line.Comments)))
	}

	if len(comments) > 0 {
		slices.Sort(comments)
		summary.CommentsMean = stat.Mean(comments, nil)
		summary.CommentsMedian = median(comments)
	}

	summary.Rules = make([]*ruleBreakdown, 0, len(ruleStats))
	for _, bd := range ruleStats {
		summary.Rules = append(summary.Rules, bd)
	}

	slices.SortFunc(summary.Rules, func(a, b *ruleBreakdown) int {
		if a.Total != b.Total {
			return b.Total - a.Total
		}

		return strings.Compare(a.Rule, b.Rule)
	})

	return summary
}

// median expects sorted values; an even count averages the two middle values.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return stat.Mean(sorted[mid-1:mid+1], nil)
}

func printDigest(writer io.Writer, summary digestSummary) {
	fmt.Fprintln(writer, "=== Scribe Report Digest ===")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "Total hotspots:  %d\n", summary.Total)
	fmt.Fprintf(writer, "To review:       %d\n", summary.ByStatus[scribe.StatusToReview.String()])
	fmt.Fprintf(writer, "Reviewed:        %d\n", summary.ByStatus[scribe.StatusReviewed.String()])
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "--- Severity ---")

	for _, severity := range []string{"BLOCKER", "CRITICAL", "MAJOR", "MINOR", "INFO"} {
		fmt.Fprintf(writer, "  %-9s %d\n", strings.ToLower(severity)+":", summary.BySeverity[severity])
	}

	fmt.Fprintln(writer)

	printCounts(writer, "--- Languages ---", summary.ByLanguage)
	printCounts(writer, "--- Resolutions ---", summary.ByResolution)

	fmt.Fprintln(writer, "--- Review Activity ---")
	fmt.Fprintf(writer, "  comments/hotspot:  mean %.2f  median %.0f\n", summary.CommentsMean, summary.CommentsMedian)
	fmt.Fprintf(writer, "  without comments:  %d\n", summary.Uncommented)
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "--- Hotspots By Rule ---")

	for _, bd := range summary.Rules {
		fmt.Fprintf(writer, "  %s\n", bd.Rule)
		fmt.Fprintf(writer, "    total: %d  to review: %d  reviewed: %d\n", bd.Total, bd.ToReview, bd.Reviewed)
	}
}

func printCounts(writer io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}

		return strings.Compare(a, b)
	})

	fmt.Fprintln(writer, title)

	for _, key := range keys {
		fmt.Fprintf(writer, "  %s: %d\n", key, counts[key])
	}

	fmt.Fprintln(writer)
}

func printRuleDetail(writer io.Writer, lines []digestLine, rule string) {
	fmt.Fprintln(writer)

	var matched []digestLine

	for _, line := range lines {
		if line.Rule == rule {
			matched = append(matched, line)
		}
	}

	if len(matched) == 0 {
		fmt.Fprintf(writer, "No hotspots raised by %s\n", rule)

		return
	}

	fmt.Fprintf(writer, "=== %s: %d hotspots ===\n", rule, len(matched))

	for _, line := range matched {
		location := line.Component
		if line.Line > 0 {
			location = fmt.Sprintf("%s:%d", location, line.Line)
		}

		state := line.Status
		if line.Resolution != nil {
			state += " (" + *line.Resolution + ")"
		}

		fmt.Fprintf(writer, "  [%s] %s  %s\n", state, location, line.Key)

		if line.Message != "" {
			fmt.Fprintf(writer, "    %s\n", line.Message)
		}
	}
}
