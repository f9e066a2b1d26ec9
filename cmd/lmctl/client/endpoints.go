package client

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// DeployEndpoint creates an inference endpoint for a model package.
func (c *Client) DeployEndpoint(req *dto.DeployEndpointRequest) (*dto.DeployEndpointResponse, error) {
	var resp dto.DeployEndpointResponse
	if err := c.doRequest(http.MethodPost, "/endpoints", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListEndpoints returns endpoints for the project, optionally filtered
// by current state.
func (c *Client) ListEndpoints(state string, limit, offset int) (*dto.ListEndpointsResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if state != "" {
		q.Set("state", state)
	}

	var resp dto.ListEndpointsResponse
	if err := c.doRequest(http.MethodGet, "/endpoints?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEndpoint returns a single endpoint by ID.
func (c *Client) GetEndpoint(id string) (*dto.EndpointResponse, error) {
	var resp dto.EndpointResponse
	if err := c.doRequest(http.MethodGet, "/endpoints/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncEndpoint refreshes the endpoint state from the serving backend.
func (c *Client) SyncEndpoint(id string) (*dto.EndpointResponse, error) {
	var resp dto.EndpointResponse
	if err := c.doRequest(http.MethodPost, "/endpoints/"+url.PathEscape(id)+"/sync", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteEndpoint tears down an endpoint.
func (c *Client) DeleteEndpoint(id string) error {
	return c.doRequest(http.MethodDelete, "/endpoints/"+url.PathEscape(id), nil, nil)
}

// Invoke sends a JSON payload to an in-service endpoint and returns the
// model output.
func (c *Client) Invoke(id string, payload json.RawMessage) (*dto.InvocationResponse, error) {
	var resp dto.InvocationResponse
	if err := c.doRequest(http.MethodPost, "/endpoints/"+url.PathEscape(id)+"/invocations", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
