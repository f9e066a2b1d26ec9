package testutil

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

// MockArtifactStore is a mock of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockArtifactStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// NopReadCloser wraps bytes into an io.ReadCloser for Download stubs.
func NopReadCloser(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}

// MockLauncherClient is a mock of LauncherClient.
type MockLauncherClient struct {
	mock.Mock
}

func (m *MockLauncherClient) SubmitTrainingJob(ctx context.Context, namespace string, job *domain.TrainingJob) (*ports.TrainingSubmission, error) {
	args := m.Called(ctx, namespace, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TrainingSubmission), args.Error(1)
}

func (m *MockLauncherClient) StopTrainingJob(ctx context.Context, namespace, name string) error {
	args := m.Called(ctx, namespace, name)
	return args.Error(0)
}

func (m *MockLauncherClient) GetTrainingJobStatus(ctx context.Context, namespace, name string) (*ports.TrainingStatus, error) {
	args := m.Called(ctx, namespace, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TrainingStatus), args.Error(1)
}

func (m *MockLauncherClient) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockServingClient is a mock of ServingClient.
type MockServingClient struct {
	mock.Mock
}

func (m *MockServingClient) Deploy(ctx context.Context, namespace string, ep *domain.Endpoint, pkg *domain.ModelPackage, image string) (*ports.ServingDeployment, error) {
	args := m.Called(ctx, namespace, ep, pkg, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ServingDeployment), args.Error(1)
}

func (m *MockServingClient) Undeploy(ctx context.Context, namespace, name string) error {
	args := m.Called(ctx, namespace, name)
	return args.Error(0)
}

func (m *MockServingClient) GetStatus(ctx context.Context, namespace, name string) (*ports.ServingStatus, error) {
	args := m.Called(ctx, namespace, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ServingStatus), args.Error(1)
}

func (m *MockServingClient) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockEndpointInvoker is a mock of EndpointInvoker.
type MockEndpointInvoker struct {
	mock.Mock
}

func (m *MockEndpointInvoker) Invoke(ctx context.Context, url string, payload []byte) ([]byte, error) {
	args := m.Called(ctx, url, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
