package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

// ============================================================================
// Endpoint DTOs
// ============================================================================

type DeployEndpointRequest struct {
	Name           string            `json:"name"`
	ModelPackageID uuid.UUID         `json:"model_package_id" binding:"required"`
	InstanceType   string            `json:"instance_type" binding:"required"`
	InstanceCount  int               `json:"instance_count" binding:"required,min=1"`
	Labels         map[string]string `json:"labels"`
}

type EndpointResponse struct {
	ID               uuid.UUID         `json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Name             string            `json:"name"`
	ModelPackageID   uuid.UUID         `json:"model_package_id"`
	ModelPackageName string            `json:"model_package_name,omitempty"`
	InstanceType     string            `json:"instance_type"`
	InstanceCount    int               `json:"instance_count"`
	DesiredState     string            `json:"desired_state"`
	CurrentState     string            `json:"current_state"`
	ExternalID       string            `json:"external_id,omitempty"`
	URL              string            `json:"url,omitempty"`
	LastError        string            `json:"last_error,omitempty"`
	Labels           map[string]string `json:"labels,omitempty"`
}

type DeployEndpointResponse struct {
	Endpoint EndpointResponse `json:"endpoint"`
	Status   string           `json:"status"`
	Message  string           `json:"message"`
}

type ListEndpointsResponse struct {
	Items      []EndpointResponse `json:"items"`
	Total      int                `json:"total"`
	PageSize   int                `json:"page_size"`
	NextOffset int                `json:"next_offset"`
}

// ============================================================================
// Invocation DTOs
// ============================================================================

type InvocationResponse struct {
	Output    json.RawMessage `json:"output"`
	LatencyMS int64           `json:"latency_ms"`
}

func ToEndpointResponse(ep *domain.Endpoint) EndpointResponse {
	return EndpointResponse{
		ID:               ep.ID,
		CreatedAt:        ep.CreatedAt,
		UpdatedAt:        ep.UpdatedAt,
		Name:             ep.Name,
		ModelPackageID:   ep.ModelPackageID,
		ModelPackageName: ep.ModelPackageName,
		InstanceType:     ep.InstanceType,
		InstanceCount:    ep.InstanceCount,
		DesiredState:     string(ep.DesiredState),
		CurrentState:     string(ep.CurrentState),
		ExternalID:       ep.ExternalID,
		URL:              ep.URL,
		LastError:        ep.LastError,
		Labels:           ep.Labels,
	}
}
