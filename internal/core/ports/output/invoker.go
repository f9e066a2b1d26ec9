package ports

import "context"

// EndpointInvoker posts a JSON payload to a live endpoint and returns the
// raw JSON response.
type EndpointInvoker interface {
	Invoke(ctx context.Context, url string, payload []byte) ([]byte, error)
}
