package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

// MockModelPackageRepo is a mock of ModelPackageRepository.
type MockModelPackageRepo struct {
	mock.Mock
}

func (m *MockModelPackageRepo) Create(ctx context.Context, pkg *domain.ModelPackage) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockModelPackageRepo) GetByID(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*domain.ModelPackage, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelPackage), args.Error(1)
}

func (m *MockModelPackageRepo) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.ModelPackage, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelPackage), args.Error(1)
}

func (m *MockModelPackageRepo) Update(ctx context.Context, projectID uuid.UUID, pkg *domain.ModelPackage) error {
	args := m.Called(ctx, projectID, pkg)
	return args.Error(0)
}

func (m *MockModelPackageRepo) Delete(ctx context.Context, projectID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockModelPackageRepo) List(ctx context.Context, filter ports.PackageListFilter) ([]*domain.ModelPackage, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ModelPackage), args.Int(1), args.Error(2)
}

// MockTrainingJobRepo is a mock of TrainingJobRepository.
type MockTrainingJobRepo struct {
	mock.Mock
}

func (m *MockTrainingJobRepo) Create(ctx context.Context, job *domain.TrainingJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockTrainingJobRepo) GetByID(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*domain.TrainingJob, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingJob), args.Error(1)
}

func (m *MockTrainingJobRepo) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.TrainingJob, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingJob), args.Error(1)
}

func (m *MockTrainingJobRepo) Update(ctx context.Context, projectID uuid.UUID, job *domain.TrainingJob) error {
	args := m.Called(ctx, projectID, job)
	return args.Error(0)
}

func (m *MockTrainingJobRepo) Delete(ctx context.Context, projectID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockTrainingJobRepo) List(ctx context.Context, filter ports.JobListFilter) ([]*domain.TrainingJob, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.TrainingJob), args.Int(1), args.Error(2)
}

// MockEndpointRepo is a mock of EndpointRepository.
type MockEndpointRepo struct {
	mock.Mock
}

func (m *MockEndpointRepo) Create(ctx context.Context, ep *domain.Endpoint) error {
	args := m.Called(ctx, ep)
	return args.Error(0)
}

func (m *MockEndpointRepo) GetByID(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*domain.Endpoint, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointRepo) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.Endpoint, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointRepo) Update(ctx context.Context, projectID uuid.UUID, ep *domain.Endpoint) error {
	args := m.Called(ctx, projectID, ep)
	return args.Error(0)
}

func (m *MockEndpointRepo) List(ctx context.Context, filter ports.EndpointListFilter) ([]*domain.Endpoint, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Endpoint), args.Int(1), args.Error(2)
}

func (m *MockEndpointRepo) CountLiveByPackage(ctx context.Context, projectID uuid.UUID, packageID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID, packageID)
	return args.Int(0), args.Error(1)
}
