package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

type httpInvoker struct {
	client *http.Client
}

// NewInvoker creates the HTTP endpoint invoker
func NewInvoker(timeout time.Duration) ports.EndpointInvoker {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &httpInvoker{
		client: &http.Client{Timeout: timeout},
	}
}

func (i *httpInvoker) Invoke(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := body
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, snippet)
	}

	return body, nil
}
