package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/testutil"
)

func TestInvocationService_Invoke(t *testing.T) {
	endpointRepo := new(testutil.MockEndpointRepo)
	invoker := new(testutil.MockEndpointInvoker)
	svc := NewInvocationService(endpointRepo, invoker)

	projectID := uuid.New()
	ep, _ := domain.NewEndpoint(projectID, "ep-1", uuid.New(), "ml.g5.12xlarge", 1)
	ep.MarkInService("http://ep-1.llm-serving.svc")

	payload := []byte(`{"inputs": "hello"}`)
	endpointRepo.On("GetByID", mock.Anything, projectID, ep.ID).Return(ep, nil)
	invoker.On("Invoke", mock.Anything, "http://ep-1.llm-serving.svc", payload).
		Return([]byte(`{"generated_text": "hi there"}`), nil)

	result, err := svc.Invoke(context.Background(), projectID, ep.ID, payload)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"generated_text": "hi there"}`, string(result.Output))
	assert.GreaterOrEqual(t, result.LatencyMS, int64(0))
}

func TestInvocationService_Invoke_EmptyPayload(t *testing.T) {
	svc := NewInvocationService(new(testutil.MockEndpointRepo), new(testutil.MockEndpointInvoker))

	_, err := svc.Invoke(context.Background(), uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInvocationPayload)
}

func TestInvocationService_Invoke_NotInService(t *testing.T) {
	endpointRepo := new(testutil.MockEndpointRepo)
	svc := NewInvocationService(endpointRepo, new(testutil.MockEndpointInvoker))

	projectID := uuid.New()
	ep, _ := domain.NewEndpoint(projectID, "ep-1", uuid.New(), "ml.g5.12xlarge", 1)

	endpointRepo.On("GetByID", mock.Anything, projectID, ep.ID).Return(ep, nil)

	_, err := svc.Invoke(context.Background(), projectID, ep.ID, []byte(`{"inputs": "x"}`))
	assert.ErrorIs(t, err, domain.ErrEndpointNotInService)
}

func TestInvocationService_Invoke_BackendError(t *testing.T) {
	endpointRepo := new(testutil.MockEndpointRepo)
	invoker := new(testutil.MockEndpointInvoker)
	svc := NewInvocationService(endpointRepo, invoker)

	projectID := uuid.New()
	ep, _ := domain.NewEndpoint(projectID, "ep-1", uuid.New(), "ml.g5.12xlarge", 1)
	ep.MarkInService("http://ep-1.llm-serving.svc")

	endpointRepo.On("GetByID", mock.Anything, projectID, ep.ID).Return(ep, nil)
	invoker.On("Invoke", mock.Anything, ep.URL, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.Invoke(context.Background(), projectID, ep.ID, []byte(`{"inputs": "x"}`))
	assert.ErrorIs(t, err, domain.ErrInvocationFailed)
	assert.Contains(t, err.Error(), "connection refused")
}
