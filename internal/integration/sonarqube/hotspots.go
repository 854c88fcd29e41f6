//nolint:tagliatelle
package sonarqube

import (
	"context"
	"net/url"
	"strconv"

	"github.com/farcloser/scribe/internal/types"
)

type pagingPayload struct {
	PageIndex int  `json:"pageIndex"`
	PageSize  int  `json:"pageSize"`
	Total     *int `json:"total"`
}

type hotspotPayload struct {
	Key                      string `json:"key"`
	Component                string `json:"component"`
	Project                  string `json:"project"`
	SecurityCategory         string `json:"securityCategory"`
	VulnerabilityProbability string `json:"vulnerabilityProbability"`
	Status                   string `json:"status"`
	Line                     int    `json:"line,omitempty"`
	Message                  string `json:"message"`
	Author                   string `json:"author,omitempty"`
	CreationDate             string `json:"creationDate"`
	UpdateDate               string `json:"updateDate"`
}

type searchResponse struct {
	Paging   *pagingPayload    `json:"paging"`
	Hotspots *[]hotspotPayload `json:"hotspots"`
}

type commentPayload struct {
	Key       string `json:"key"`
	Login     string `json:"login"`
	HTMLText  string `json:"htmlText"`
	Markdown  string `json:"markdown"`
	CreatedAt string `json:"createdAt"`
}

type showResponse struct {
	Rule *struct {
		Key string `json:"key"`
	} `json:"rule"`
	Comment    []commentPayload `json:"comment"`
	Resolution *string          `json:"resolution"`
}

// SearchHotspots returns one page of the hotspots matching the query.
func (c *Client) SearchHotspots(ctx context.Context, query types.SearchQuery) (*types.HotspotPage, error) {
	params := url.Values{}
	params.Set("projectKey", query.Project)
	params.Set("status", query.Status.String())
	params.Set("p", strconv.Itoa(query.Page))
	params.Set("ps", strconv.Itoa(query.PageSize))

	if query.Branch != "" {
		params.Set("branch", query.Branch)
	}

	var resp searchResponse
	if err := c.get(ctx, pathHotspotSearch, params, &resp); err != nil {
		return nil, err
	}

	if resp.Paging == nil {
		return nil, missing(pathHotspotSearch, "paging")
	}

	if resp.Paging.Total == nil {
		return nil, missing(pathHotspotSearch, "paging.total")
	}

	if resp.Hotspots == nil {
		return nil, missing(pathHotspotSearch, "hotspots")
	}

	page := &types.HotspotPage{
		Hotspots: make([]types.HotspotSummary, 0, len(*resp.Hotspots)),
		Paging: types.Paging{
			PageIndex: resp.Paging.PageIndex,
			PageSize:  resp.Paging.PageSize,
			Total:     *resp.Paging.Total,
		},
	}

	for _, h := range *resp.Hotspots {
		if h.Key == "" {
			return nil, missing(pathHotspotSearch, "hotspots[].key")
		}

		page.Hotspots = append(page.Hotspots, types.HotspotSummary{
			Key:                      h.Key,
			Component:                h.Component,
			Project:                  h.Project,
			SecurityCategory:         h.SecurityCategory,
			VulnerabilityProbability: h.VulnerabilityProbability,
			Status:                   types.Status(h.Status),
			Line:                     h.Line,
			Message:                  h.Message,
			Author:                   h.Author,
			CreationDate:             h.CreationDate,
			UpdateDate:               h.UpdateDate,
		})
	}

	return page, nil
}

// ShowHotspot returns the rule reference, comments and resolution of a hotspot.
func (c *Client) ShowHotspot(ctx context.Context, key string) (*types.HotspotDetail, error) {
	params := url.Values{}
	params.Set("hotspot", key)

	var resp showResponse
	if err := c.get(ctx, pathHotspotShow, params, &resp); err != nil {
		return nil, err
	}

	if resp.Rule == nil {
		return nil, missing(pathHotspotShow, "rule")
	}

	if resp.Rule.Key == "" {
		return nil, missing(pathHotspotShow, "rule.key")
	}

	comments := make([]types.Comment, 0, len(resp.Comment))
	for _, cm := range resp.Comment {
		comments = append(comments, types.Comment{
			Key:       cm.Key,
			Login:     cm.Login,
			HTMLText:  cm.HTMLText,
			Markdown:  cm.Markdown,
			CreatedAt: cm.CreatedAt,
		})
	}

	return &types.HotspotDetail{
		Rule:       resp.Rule.Key,
		Comments:   comments,
		Resolution: resp.Resolution,
	}, nil
}
