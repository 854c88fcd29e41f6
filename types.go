package scribe

import "github.com/farcloser/scribe/internal/types"

// Status is the review state a collection is filtered on.
type Status = types.Status

const (
	StatusToReview = types.StatusToReview
	StatusReviewed = types.StatusReviewed
)

// ParseStatus converts "to_review" / "reviewed" (any case) to a Status.
func ParseStatus(raw string) (Status, error) {
	return types.ParseStatus(raw)
}

// Hotspot is a security hotspot enriched with its rule metadata and review history.
type Hotspot struct {
	types.HotspotSummary

	// Rule is the key of the rule that raised the hotspot (e.g. java:S2068).
	Rule     string
	Severity string
	// Language is the language key of the rule; resolve it through Languages for display.
	Language string
	Comments []types.Comment
	// Resolution is set only for hotspots collected with StatusReviewed (SAFE, FIXED, ACKNOWLEDGED).
	Resolution *string
}

// Sweep holds the hotspots of a project for both review states.
type Sweep struct {
	ToReview []Hotspot
	Reviewed []Hotspot
}

// Len returns the total number of hotspots in the sweep.
func (s *Sweep) Len() int {
	return len(s.ToReview) + len(s.Reviewed)
}

// All returns the to-review hotspots followed by the reviewed ones.
func (s *Sweep) All() []Hotspot {
	all := make([]Hotspot, 0, s.Len())
	all = append(all, s.ToReview...)

	return append(all, s.Reviewed...)
}
