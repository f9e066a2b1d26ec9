package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

type InvocationService struct {
	endpointRepo ports.EndpointRepository
	invoker      ports.EndpointInvoker
}

func NewInvocationService(endpointRepo ports.EndpointRepository, invoker ports.EndpointInvoker) *InvocationService {
	return &InvocationService{
		endpointRepo: endpointRepo,
		invoker:      invoker,
	}
}

type InvocationResult struct {
	Output    json.RawMessage
	LatencyMS int64
}

// Invoke posts a generation payload to an in-service endpoint and returns the
// backend's JSON response verbatim.
func (s *InvocationService) Invoke(ctx context.Context, projectID, endpointID uuid.UUID, payload []byte) (*InvocationResult, error) {
	if len(payload) == 0 {
		return nil, domain.ErrEmptyInvocationPayload
	}

	ep, err := s.endpointRepo.GetByID(ctx, projectID, endpointID)
	if err != nil {
		return nil, err
	}
	if !ep.IsInService() || ep.URL == "" {
		return nil, domain.ErrEndpointNotInService
	}

	start := time.Now()
	out, err := s.invoker.Invoke(ctx, ep.URL, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvocationFailed, err)
	}

	return &InvocationResult{
		Output:    out,
		LatencyMS: time.Since(start).Milliseconds(),
	}, nil
}
