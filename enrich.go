package scribe

import (
	"context"
	"fmt"

	"github.com/farcloser/scribe/internal/types"
)

// enrich composes a search entry with the partial updates of its detail and rule calls.
func enrich(summary types.HotspotSummary, detail types.HotspotDetail, rule types.RuleDetail) Hotspot {
	return Hotspot{
		HotspotSummary: summary,
		Rule:           detail.Rule,
		Severity:       rule.Severity,
		Language:       rule.Language,
		Comments:       detail.Comments,
		Resolution:     detail.Resolution,
	}
}

// enrichOne runs the two dependent calls for a single hotspot: detail first, since it yields the rule key.
func (c *Collector) enrichOne(ctx context.Context, status Status, summary types.HotspotSummary) (Hotspot, error) {
	detail, err := c.client.ShowHotspot(ctx, summary.Key)
	if err != nil {
		return Hotspot{}, fmt.Errorf("hotspot %s: %w", summary.Key, err)
	}

	if status == StatusReviewed {
		if detail.Resolution == nil {
			return Hotspot{}, fmt.Errorf("hotspot %s: %w: missing \"resolution\" on reviewed hotspot",
				summary.Key, ErrMalformedResponse)
		}
	} else {
		detail.Resolution = nil
	}

	rule, err := c.client.ShowRule(ctx, detail.Rule)
	if err != nil {
		return Hotspot{}, fmt.Errorf("hotspot %s: rule %s: %w", summary.Key, detail.Rule, err)
	}

	return enrich(summary, *detail, *rule), nil
}
