package scribe

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/farcloser/scribe/internal/config"
	"github.com/farcloser/scribe/internal/types"
)

/*
Usage:

client, err := sonarqube.New("https://sonar.example.com", sonarqube.WithToken(token))
collector := scribe.NewCollector(client, cfg.Settings, scribe.CollectorOptions{Project: "my-project"})

toReview, err := collector.Collect(ctx, scribe.StatusToReview)

// Both states, enrichment spread over 8 workers
collector := scribe.NewCollector(client, cfg.Settings, scribe.CollectorOptions{Project: "my-project", Workers: 8})
sweep, err := collector.CollectAll(ctx)
for _, h := range sweep.Reviewed {
    fmt.Printf("%s %s %s\n", h.Key, h.Severity, *h.Resolution)
}

*/

// PageSizeSetting is the setting holding the number of hotspots requested per search page.
const PageSizeSetting = config.SettingMaxPerPage

// Client is the subset of the analysis server API the collector needs.
type Client interface {
	SearchHotspots(ctx context.Context, query types.SearchQuery) (*types.HotspotPage, error)
	ShowHotspot(ctx context.Context, key string) (*types.HotspotDetail, error)
	ShowRule(ctx context.Context, key string) (*types.RuleDetail, error)
}

// Settings is a configuration source.
type Settings interface {
	Lookup(key string) (string, bool)
}

// CollectorOptions scopes a collection.
type CollectorOptions struct {
	Project string
	// Branch is optional; the server's main branch is used when empty.
	Branch string
	// Workers bounds how many hotspots of a page are enriched concurrently (default: 1, sequential).
	Workers int
	// OnPage, when set, is called after each page has been enriched.
	OnPage func(status Status, page, pages int)
}

// Collector walks the hotspot search of a project and enriches every entry.
// A collector runs one sweep at a time.
type Collector struct {
	client   Client
	settings Settings
	opts     CollectorOptions
}

// NewCollector returns a collector using client for remote calls and settings for the page size.
func NewCollector(client Client, settings Settings, opts CollectorOptions) *Collector {
	opts.Workers = max(opts.Workers, 1)

	return &Collector{
		client:   client,
		settings: settings,
		opts:     opts,
	}
}

// Collect returns every hotspot with the given status, in server order, fully enriched.
// The first failing remote call aborts the collection; no partial result is returned.
func (c *Collector) Collect(ctx context.Context, status Status) ([]Hotspot, error) {
	pageSize, err := c.pageSize()
	if err != nil {
		return nil, err
	}

	if status != StatusToReview && status != StatusReviewed {
		return nil, fmt.Errorf("%w: invalid hotspot status %q", ErrConfiguration, status)
	}

	if c.opts.Project == "" {
		return nil, fmt.Errorf("%w: project key is required", ErrConfiguration)
	}

	slog.Debug("scribe.Collect", "status", status, "project", c.opts.Project, "branch", c.opts.Branch,
		"page size", pageSize, "workers", c.opts.Workers)

	result := []Hotspot{}

	for page := 1; ; page++ {
		found, err := c.client.SearchHotspots(ctx, types.SearchQuery{
			Project:  c.opts.Project,
			Branch:   c.opts.Branch,
			Status:   status,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("searching %s hotspots (page %d): %w", status, page, err)
		}

		enriched, err := c.enrichPage(ctx, status, found.Hotspots)
		if err != nil {
			return nil, fmt.Errorf("enriching %s hotspots (page %d): %w", status, page, err)
		}

		result = append(result, enriched...)

		if c.opts.OnPage != nil {
			c.opts.OnPage(status, page, pageCount(found.Paging.Total, pageSize))
		}

		// Duplicates are passed through if the result set shifts between pages.
		if page*pageSize >= found.Paging.Total {
			break
		}
	}

	slog.Debug("scribe.Collect", "status", status, "collected", len(result))

	return result, nil
}

// CollectAll collects the to-review hotspots, then the reviewed ones.
func (c *Collector) CollectAll(ctx context.Context) (*Sweep, error) {
	toReview, err := c.Collect(ctx, StatusToReview)
	if err != nil {
		return nil, err
	}

	reviewed, err := c.Collect(ctx, StatusReviewed)
	if err != nil {
		return nil, err
	}

	return &Sweep{ToReview: toReview, Reviewed: reviewed}, nil
}

// enrichPage enriches the hotspots of one page, each by exactly one task, keeping page order.
func (c *Collector) enrichPage(ctx context.Context, status Status, summaries []types.HotspotSummary) ([]Hotspot, error) {
	enriched := make([]Hotspot, len(summaries))

	if c.opts.Workers == 1 {
		for idx, summary := range summaries {
			hotspot, err := c.enrichOne(ctx, status, summary)
			if err != nil {
				return nil, err
			}

			enriched[idx] = hotspot
		}

		return enriched, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.opts.Workers)

	for idx, summary := range summaries {
		group.Go(func() error {
			hotspot, err := c.enrichOne(groupCtx, status, summary)
			if err != nil {
				return err
			}

			enriched[idx] = hotspot

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

func (c *Collector) pageSize() (int, error) {
	if c.settings == nil {
		return 0, fmt.Errorf("%w: %s is not set", ErrConfiguration, PageSizeSetting)
	}

	raw, ok := c.settings.Lookup(PageSizeSetting)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not set", ErrConfiguration, PageSizeSetting)
	}

	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrConfiguration, PageSizeSetting, raw)
	}

	return size, nil
}

func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 1
	}

	return (total + pageSize - 1) / pageSize
}
