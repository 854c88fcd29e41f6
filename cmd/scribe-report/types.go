//nolint:tagliatelle
package main

// Record is a single line in the JSONL report file: one enriched hotspot.
type Record struct {
	Key                      string          `json:"key"`
	Status                   string          `json:"status"`
	Rule                     string          `json:"rule"`
	Severity                 string          `json:"severity"`
	Language                 string          `json:"language"`
	LanguageName             string          `json:"language_name"`
	Component                string          `json:"component,omitempty"`
	Line                     int             `json:"line,omitempty"`
	Message                  string          `json:"message,omitempty"`
	SecurityCategory         string          `json:"security_category,omitempty"`
	VulnerabilityProbability string          `json:"vulnerability_probability,omitempty"`
	Author                   string          `json:"author,omitempty"`
	CreationDate             string          `json:"creation_date,omitempty"`
	UpdateDate               string          `json:"update_date,omitempty"`
	Comments                 []RecordComment `json:"comments"`
	Resolution               *string         `json:"resolution,omitempty"`
}

// RecordComment is a review comment as written to the report.
type RecordComment struct {
	Login     string `json:"login,omitempty"`
	Markdown  string `json:"markdown,omitempty"`
	CreatedAt string `json:"created_at"`
}

// RecordHeader is the first line of the report, describing the sweep.
type RecordHeader struct {
	Project     string         `json:"project"`
	Branch      string         `json:"branch,omitempty"`
	Server      string         `json:"server"`
	GeneratedAt string         `json:"generated_at"`
	Counts      map[string]int `json:"counts"`
}

// digestLine holds the typed fields needed by the digest command.
// Header lines decode with an empty Key and are skipped from hotspot statistics.
type digestLine struct {
	Project    string          `json:"project,omitempty"`
	Key        string          `json:"key,omitempty"`
	Status     string          `json:"status,omitempty"`
	Rule       string          `json:"rule,omitempty"`
	Severity   string          `json:"severity,omitempty"`
	Language   string          `json:"language_name,omitempty"`
	Component  string          `json:"component,omitempty"`
	Line       int             `json:"line,omitempty"`
	Message    string          `json:"message,omitempty"`
	Comments   []RecordComment `json:"comments"`
	Resolution *string         `json:"resolution,omitempty"`
}

// ruleBreakdown tracks per-rule counts for the digest.
type ruleBreakdown struct {
	Rule     string
	Total    int
	ToReview int
	Reviewed int
}
