package scribe_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/farcloser/scribe"
	"github.com/farcloser/scribe/internal/types"
)

// fakeServer is an in-memory hotspot API paginating like the real search endpoint.
type fakeServer struct {
	mu sync.Mutex

	hotspots map[scribe.Status][]types.HotspotSummary
	details  map[string]types.HotspotDetail
	rules    map[string]types.RuleDetail

	searchErrs map[int]error
	showErrs   map[string]error
	ruleErrs   map[string]error

	searches  []types.SearchQuery
	showCalls []string
	ruleCalls []string
	// calls records every remote call in order, as "show:KEY" or "rule:KEY".
	calls []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		hotspots:   map[scribe.Status][]types.HotspotSummary{},
		details:    map[string]types.HotspotDetail{},
		rules:      map[string]types.RuleDetail{},
		searchErrs: map[int]error{},
		showErrs:   map[string]error{},
		ruleErrs:   map[string]error{},
	}
}

// add registers a hotspot with its detail and rule payloads.
func (f *fakeServer) add(status scribe.Status, key, rule, severity, language string, resolution *string) {
	f.hotspots[status] = append(f.hotspots[status], types.HotspotSummary{
		Key:       key,
		Status:    status,
		Component: "project:src/" + key + ".java",
		Line:      len(f.hotspots[status]) + 1,
		Message:   "Review " + key,
	})
	f.details[key] = types.HotspotDetail{
		Rule:       rule,
		Comments:   []types.Comment{{Key: key + "-c1", Login: "alice", Markdown: "first"}, {Key: key + "-c2", Login: "bob", Markdown: "second"}},
		Resolution: resolution,
	}
	f.rules[rule] = types.RuleDetail{Key: rule, Severity: severity, Language: language}
}

func (f *fakeServer) addMany(status scribe.Status, count int) {
	for i := range count {
		key := fmt.Sprintf("%s-%03d", status, i)
		var resolution *string
		if status == scribe.StatusReviewed {
			resolution = ptr("SAFE")
		}
		f.add(status, key, fmt.Sprintf("java:S%d", 1000+i%7), "MAJOR", "java", resolution)
	}
}

func (f *fakeServer) SearchHotspots(_ context.Context, query types.SearchQuery) (*types.HotspotPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searches = append(f.searches, query)

	if err := f.searchErrs[query.Page]; err != nil {
		return nil, err
	}

	all := f.hotspots[query.Status]
	start := min((query.Page-1)*query.PageSize, len(all))
	end := min(start+query.PageSize, len(all))

	return &types.HotspotPage{
		Hotspots: append([]types.HotspotSummary{}, all[start:end]...),
		Paging:   types.Paging{PageIndex: query.Page, PageSize: query.PageSize, Total: len(all)},
	}, nil
}

func (f *fakeServer) ShowHotspot(_ context.Context, key string) (*types.HotspotDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.showCalls = append(f.showCalls, key)
	f.calls = append(f.calls, "show:"+key)

	if err := f.showErrs[key]; err != nil {
		return nil, err
	}

	detail, ok := f.details[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown hotspot %s", scribe.ErrRequestRejected, key)
	}

	return &detail, nil
}

func (f *fakeServer) ShowRule(_ context.Context, key string) (*types.RuleDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ruleCalls = append(f.ruleCalls, key)
	f.calls = append(f.calls, "rule:"+key)

	if err := f.ruleErrs[key]; err != nil {
		return nil, err
	}

	rule, ok := f.rules[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown rule %s", scribe.ErrRequestRejected, key)
	}

	return &rule, nil
}

func (f *fakeServer) searchPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	pages := make([]int, 0, len(f.searches))
	for _, q := range f.searches {
		pages = append(pages, q.Page)
	}

	return pages
}

func keys(hotspots []scribe.Hotspot) []string {
	out := make([]string, 0, len(hotspots))
	for _, h := range hotspots {
		out = append(out, h.Key)
	}

	return out
}

func ptr[T any](v T) *T {
	return &v
}
