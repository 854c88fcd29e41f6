package sonarqube

import (
	"context"
	"net/url"

	"github.com/farcloser/scribe/internal/types"
)

type ruleResponse struct {
	Rule *struct {
		Key      string  `json:"key"`
		Severity *string `json:"severity"`
		Lang     *string `json:"lang"`
	} `json:"rule"`
}

// ShowRule returns the severity and language of a rule.
func (c *Client) ShowRule(ctx context.Context, key string) (*types.RuleDetail, error) {
	params := url.Values{}
	params.Set("key", key)

	var resp ruleResponse
	if err := c.get(ctx, pathRuleShow, params, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.Rule == nil:
		return nil, missing(pathRuleShow, "rule")
	case resp.Rule.Severity == nil:
		return nil, missing(pathRuleShow, "rule.severity")
	case resp.Rule.Lang == nil:
		return nil, missing(pathRuleShow, "rule.lang")
	}

	ruleKey := resp.Rule.Key
	if ruleKey == "" {
		ruleKey = key
	}

	return &types.RuleDetail{
		Key:      ruleKey,
		Severity: *resp.Rule.Severity,
		Language: *resp.Rule.Lang,
	}, nil
}
