package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewEndpoint(t *testing.T) {
	projectID := uuid.New()
	packageID := uuid.New()

	ep, err := NewEndpoint(projectID, "my-llama-ep", packageID, "ml.g5.12xlarge", 1)
	assert.NoError(t, err)
	assert.Equal(t, EndpointStateCreating, ep.CurrentState)
	assert.Equal(t, EndpointStateInService, ep.DesiredState)
	assert.True(t, ep.IsLive())
	assert.False(t, ep.IsInService())

	_, err = NewEndpoint(projectID, "", packageID, "ml.g5.12xlarge", 1)
	assert.ErrorIs(t, err, ErrInvalidEndpointName)

	_, err = NewEndpoint(projectID, "my-llama-ep", uuid.Nil, "ml.g5.12xlarge", 1)
	assert.ErrorIs(t, err, ErrPackageNotFound)

	_, err = NewEndpoint(projectID, "my-llama-ep", packageID, "ml.g5.12xlarge", 0)
	assert.ErrorIs(t, err, ErrInvalidInstanceCount)
}

func TestEndpoint_MarkInService(t *testing.T) {
	ep, _ := NewEndpoint(uuid.New(), "ep-1", uuid.New(), "ml.g5.12xlarge", 1)
	ep.LastError = "transient pull failure"

	ep.MarkInService("http://ep-1.llm-serving.svc")
	assert.True(t, ep.IsInService())
	assert.Equal(t, "http://ep-1.llm-serving.svc", ep.URL)
	assert.Empty(t, ep.LastError)
}

func TestEndpoint_MarkFailed(t *testing.T) {
	ep, _ := NewEndpoint(uuid.New(), "ep-1", uuid.New(), "ml.g5.12xlarge", 1)
	ep.MarkInService("http://ep-1.llm-serving.svc")

	ep.MarkFailed("image pull backoff")
	assert.Equal(t, EndpointStateFailed, ep.CurrentState)
	assert.Equal(t, "image pull backoff", ep.LastError)
	assert.Empty(t, ep.URL)
	assert.True(t, ep.IsLive())
}

func TestEndpoint_Teardown(t *testing.T) {
	ep, _ := NewEndpoint(uuid.New(), "ep-1", uuid.New(), "ml.g5.12xlarge", 1)
	ep.MarkInService("http://ep-1.llm-serving.svc")

	ep.MarkDeleting()
	assert.Equal(t, EndpointStateDeleting, ep.CurrentState)
	assert.Equal(t, EndpointStateDeleted, ep.DesiredState)
	assert.True(t, ep.IsLive())

	ep.MarkDeleted()
	assert.Equal(t, EndpointStateDeleted, ep.CurrentState)
	assert.Empty(t, ep.URL)
	assert.False(t, ep.IsLive())
}
