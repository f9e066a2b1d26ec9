package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

type PackageListFilter struct {
	ProjectID   uuid.UUID
	BaseModelID string
	Search      string
	Limit       int
	Offset      int
}

type JobListFilter struct {
	ProjectID   uuid.UUID
	State       string
	BaseModelID string
	Limit       int
	Offset      int
}

type EndpointListFilter struct {
	ProjectID uuid.UUID
	State     string
	Limit     int
	Offset    int
}

type ModelPackageRepository interface {
	Create(ctx context.Context, pkg *domain.ModelPackage) error
	GetByID(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*domain.ModelPackage, error)
	GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.ModelPackage, error)
	Update(ctx context.Context, projectID uuid.UUID, pkg *domain.ModelPackage) error
	Delete(ctx context.Context, projectID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, filter PackageListFilter) ([]*domain.ModelPackage, int, error)
}

type TrainingJobRepository interface {
	Create(ctx context.Context, job *domain.TrainingJob) error
	GetByID(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*domain.TrainingJob, error)
	GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.TrainingJob, error)
	Update(ctx context.Context, projectID uuid.UUID, job *domain.TrainingJob) error
	Delete(ctx context.Context, projectID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, filter JobListFilter) ([]*domain.TrainingJob, int, error)
}

type EndpointRepository interface {
	Create(ctx context.Context, ep *domain.Endpoint) error
	GetByID(ctx context.Context, projectID uuid.UUID, id uuid.UUID) (*domain.Endpoint, error)
	GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.Endpoint, error)
	Update(ctx context.Context, projectID uuid.UUID, ep *domain.Endpoint) error
	List(ctx context.Context, filter EndpointListFilter) ([]*domain.Endpoint, int, error)

	// CountLiveByPackage reports endpoints that still hold backend resources
	// for the given model package.
	CountLiveByPackage(ctx context.Context, projectID uuid.UUID, packageID uuid.UUID) (int, error)
}
