// Package output provides shared hotspot serialization for scribe JSON output.
package output

import (
	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/types"
)

// HotspotToMap converts an enriched hotspot into the canonical map structure
// used for JSON and JSONL serialization. Language names are resolved through languages.
func HotspotToMap(hotspot *scribe.Hotspot, languages *scribe.Languages) map[string]any {
	meta := map[string]any{
		"key":                       hotspot.Key,
		"status":                    hotspot.Status.String(),
		"rule":                      hotspot.Rule,
		"severity":                  hotspot.Severity,
		"language":                  hotspot.Language,
		"language_name":             languages.Resolve(hotspot.Language),
		"component":                 hotspot.Component,
		"project":                   hotspot.Project,
		"security_category":         hotspot.SecurityCategory,
		"vulnerability_probability": hotspot.VulnerabilityProbability,
		"message":                   hotspot.Message,
		"comments":                  CommentsToList(hotspot.Comments),
	}

	if hotspot.Line > 0 {
		meta["line"] = hotspot.Line
	}

	if hotspot.Author != "" {
		meta["author"] = hotspot.Author
	}

	if hotspot.CreationDate != "" {
		meta["creation_date"] = hotspot.CreationDate
	}

	if hotspot.UpdateDate != "" {
		meta["update_date"] = hotspot.UpdateDate
	}

	// Absent, not empty, for hotspots that were not collected as reviewed.
	if hotspot.Resolution != nil {
		meta["resolution"] = *hotspot.Resolution
	}

	return meta
}

// CommentsToList converts comments to a list of maps, preserving order.
func CommentsToList(comments []types.Comment) []any {
	list := make([]any, 0, len(comments))
	for _, comment := range comments {
		list = append(list, map[string]any{
			"key":        comment.Key,
			"login":      comment.Login,
			"markdown":   comment.Markdown,
			"created_at": comment.CreatedAt,
		})
	}

	return list
}

// SweepToMap converts a full sweep to a map keyed by status.
func SweepToMap(sweep *scribe.Sweep, languages *scribe.Languages) map[string]any {
	return map[string]any{
		"summary": map[string]any{
			"to_review": len(sweep.ToReview),
			"reviewed":  len(sweep.Reviewed),
			"total":     sweep.Len(),
		},
		scribe.StatusToReview.String(): HotspotsToList(sweep.ToReview, languages),
		scribe.StatusReviewed.String(): HotspotsToList(sweep.Reviewed, languages),
	}
}

// HotspotsToList converts hotspots to a list of canonical maps, preserving order.
func HotspotsToList(hotspots []scribe.Hotspot, languages *scribe.Languages) []any {
	list := make([]any, 0, len(hotspots))
	for idx := range hotspots {
		list = append(list, HotspotToMap(&hotspots[idx], languages))
	}

	return list
}
