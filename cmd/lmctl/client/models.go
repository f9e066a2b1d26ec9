package client

import (
	"net/http"
	"net/url"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// ListBaseModels returns the base models in the catalog, optionally
// filtered by model family.
func (c *Client) ListBaseModels(family string) (*dto.ListBaseModelsResponse, error) {
	path := "/base_models"
	if family != "" {
		path += "?family=" + url.QueryEscape(family)
	}

	var resp dto.ListBaseModelsResponse
	if err := c.doRequest(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBaseModel returns a single base model by ID.
func (c *Client) GetBaseModel(id string) (*dto.BaseModelResponse, error) {
	var resp dto.BaseModelResponse
	if err := c.doRequest(http.MethodGet, "/base_models/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
