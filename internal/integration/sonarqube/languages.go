package sonarqube

import (
	"context"
	"net/url"

	"github.com/farcloser/scribe/internal/types"
)

type languagesResponse struct {
	Languages *[]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"languages"`
}

// ListLanguages returns every language supported by the server, in server order.
func (c *Client) ListLanguages(ctx context.Context) ([]types.Language, error) {
	var resp languagesResponse
	if err := c.get(ctx, pathLanguageList, url.Values{}, &resp); err != nil {
		return nil, err
	}

	if resp.Languages == nil {
		return nil, missing(pathLanguageList, "languages")
	}

	languages := make([]types.Language, 0, len(*resp.Languages))
	for _, l := range *resp.Languages {
		languages = append(languages, types.Language{Key: l.Key, Name: l.Name})
	}

	return languages, nil
}
