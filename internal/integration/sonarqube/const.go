package sonarqube

import "time"

const (
	name = "sonarqube"
	// Large instances can be slow to answer the rule and hotspot detail endpoints under load.
	timeout = 60 * time.Second
	// Upper bound for a single response body; hotspot pages at ps=500 stay well under this.
	maxBodySize = 32 << 20

	userAgent = "scribe"

	pathHotspotSearch = "api/hotspots/search"
	pathHotspotShow   = "api/hotspots/show"
	pathRuleShow      = "api/rules/show"
	pathLanguageList  = "api/languages/list"
)
