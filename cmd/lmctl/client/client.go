// Package client provides an HTTP client for the llm-platform API.
//
// It wraps the server's REST surface with typed methods so CLI commands
// can work with native Go types rather than raw HTTP requests. All
// requests carry the project ID in the X-Project-ID header.
package client

import (
	"net/http"
	"time"
)

// Client is the HTTP client for the llm-platform server.
type Client struct {
	baseURL   string
	projectID string

	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. Every request
// is scoped to projectID via the X-Project-ID header.
func NewClient(baseURL, projectID string) *Client {
	return &Client{
		baseURL:   baseURL,
		projectID: projectID,
		httpClient: &http.Client{
			// Invocations against large models can take a while.
			Timeout: 120 * time.Second,
		},
	}
}
