package types

import (
	"errors"
	"fmt"
	"strings"
)

var errInvalidStatus = errors.New("invalid hotspot status")

// Status is the review-workflow state of a security hotspot.
type Status string

const (
	StatusToReview Status = "TO_REVIEW"
	StatusReviewed Status = "REVIEWED"
)

// ParseStatus converts a status name (case-insensitive) to a Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusToReview:
		return StatusToReview, nil
	case StatusReviewed:
		return StatusReviewed, nil
	}

	return "", fmt.Errorf("%q: %w (expected %s or %s)", raw, errInvalidStatus, StatusToReview, StatusReviewed)
}

func (s Status) String() string {
	return string(s)
}

// Language is a language known by the analysis server.
type Language struct {
	Key  string
	Name string
}

// Comment is a review comment attached to a hotspot.
type Comment struct {
	Key       string
	Login     string
	HTMLText  string
	Markdown  string
	CreatedAt string
}

// Paging is the server-reported position of a search page.
type Paging struct {
	PageIndex int
	PageSize  int
	Total     int
}

// HotspotSummary is a hotspot as listed by the search endpoint, before enrichment.
type HotspotSummary struct {
	Key                      string
	Component                string
	Project                  string
	SecurityCategory         string
	VulnerabilityProbability string // LOW, MEDIUM, HIGH
	Status                   Status
	Line                     int
	Message                  string
	Author                   string
	CreationDate             string
	UpdateDate               string
}

// HotspotPage is one page of search results.
type HotspotPage struct {
	Hotspots []HotspotSummary
	Paging   Paging
}

// SearchQuery scopes a hotspot search.
type SearchQuery struct {
	Project  string
	Branch   string // empty means the main branch
	Status   Status
	Page     int // 1-based
	PageSize int
}

// HotspotDetail holds the fields the hotspot-detail endpoint contributes to a hotspot.
type HotspotDetail struct {
	Rule     string
	Comments []Comment
	// Resolution is nil when the server did not report one.
	Resolution *string
}

// RuleDetail holds the fields the rule-detail endpoint contributes to a hotspot.
type RuleDetail struct {
	Key      string
	Severity string
	Language string
}
