//nolint:wrapcheck
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/output"
)

const rulesBaseURL = "https://rules.sonarsource.com"

// severityOrder defines the display order for severities.
//
//nolint:gochecknoglobals // configuration data, effectively const
var severityOrder = []string{
	"BLOCKER",
	"CRITICAL",
	"MAJOR",
	"MINOR",
	"INFO",
}

// severityLabel is numbered so that formatters sorting keys keep severityOrder.
//
//nolint:gochecknoglobals // configuration data, effectively const
var severityLabel = map[string]string{
	"BLOCKER":  "1. Blocker",
	"CRITICAL": "2. Critical",
	"MAJOR":    "3. Major",
	"MINOR":    "4. Minor",
	"INFO":     "5. Info",
}

func outputSweep(project string, sweep *scribe.Sweep, languages *scribe.Languages, formatName string, raw bool) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	var meta map[string]any
	if raw {
		meta = output.SweepToMap(sweep, languages)
	} else {
		meta = buildFriendlyOutput(sweep, languages)
	}

	data := &format.Data{
		Object: project,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput creates a user-friendly summary of a sweep, grouped by status then severity.
func buildFriendlyOutput(sweep *scribe.Sweep, languages *scribe.Languages) map[string]any {
	meta := map[string]any{
		"summary": fmt.Sprintf("%d hotspots (%d to review, %d reviewed)",
			sweep.Len(), len(sweep.ToReview), len(sweep.Reviewed)),
	}

	if grouped := groupBySeverity(sweep.ToReview, languages); len(grouped) > 0 {
		meta["to_review"] = grouped
	}

	if grouped := groupBySeverity(sweep.Reviewed, languages); len(grouped) > 0 {
		meta["reviewed"] = grouped
	}

	if resolutions := countResolutions(sweep.Reviewed); len(resolutions) > 0 {
		meta["resolutions"] = resolutions
	}

	return meta
}

func groupBySeverity(hotspots []scribe.Hotspot, languages *scribe.Languages) map[string]any {
	bySeverity := make(map[string][]any)

	for idx := range hotspots {
		hotspot := &hotspots[idx]
		bySeverity[hotspot.Severity] = append(bySeverity[hotspot.Severity], hotspotLine(hotspot, languages))
	}

	grouped := make(map[string]any, len(bySeverity))

	for _, severity := range severityOrder {
		if lines, ok := bySeverity[severity]; ok {
			grouped[severityLabel[severity]] = lines
			delete(bySeverity, severity)
		}
	}

	// Anything the server reports outside the known scale is kept as-is.
	for severity, lines := range bySeverity {
		grouped[severity] = lines
	}

	return grouped
}

func hotspotLine(hotspot *scribe.Hotspot, languages *scribe.Languages) string {
	location := hotspot.Component
	if hotspot.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, hotspot.Line)
	}

	line := fmt.Sprintf("[%s] %s %s: %s (%s, %s)",
		strings.ToLower(hotspot.VulnerabilityProbability),
		hotspot.Rule,
		location,
		hotspot.Message,
		languages.Resolve(hotspot.Language),
		commentCount(len(hotspot.Comments)),
	)

	if hotspot.Resolution != nil {
		line += " -> " + *hotspot.Resolution
	}

	return line + " - " + ruleURL(hotspot)
}

func ruleURL(hotspot *scribe.Hotspot) string {
	repo, key, found := strings.Cut(hotspot.Rule, ":")
	if !found {
		return rulesBaseURL
	}

	return fmt.Sprintf("%s/%s/RSPEC-%s", rulesBaseURL, repo, strings.TrimPrefix(key, "S"))
}

func commentCount(n int) string {
	if n == 1 {
		return "1 comment"
	}

	return fmt.Sprintf("%d comments", n)
}

func countResolutions(hotspots []scribe.Hotspot) map[string]any {
	counts := make(map[string]any)

	for idx := range hotspots {
		if res := hotspots[idx].Resolution; res != nil {
			current, _ := counts[*res].(int)
			counts[*res] = current + 1
		}
	}

	return counts
}
