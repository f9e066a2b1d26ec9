package ports

import (
	"context"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

// TrainingSubmission is the result of handing a job to the launcher
type TrainingSubmission struct {
	ExternalID string // backend resource UID
}

// TrainingStatus is the launcher's view of a running job
type TrainingStatus struct {
	State  domain.TrainingJobState
	Reason string
}

// LauncherClient defines the contract for the managed training backend
type LauncherClient interface {
	// SubmitTrainingJob creates the distributed training resource in the
	// backend cluster.
	SubmitTrainingJob(ctx context.Context, namespace string, job *domain.TrainingJob) (*TrainingSubmission, error)

	// StopTrainingJob tears a running job down.
	StopTrainingJob(ctx context.Context, namespace, name string) error

	// GetTrainingJobStatus retrieves current job status from the backend
	GetTrainingJobStatus(ctx context.Context, namespace, name string) (*TrainingStatus, error)

	// IsAvailable checks if the launcher integration is enabled and configured
	IsAvailable() bool
}

// ServingDeployment is the result of a serving backend deployment
type ServingDeployment struct {
	ExternalID string // backend resource UID
	URL        string // endpoint URL (if already ready)
}

// ServingStatus is the backend's view of a deployed endpoint
type ServingStatus struct {
	URL   string
	Ready bool
	Error string
}

// ServingClient defines the contract for the managed inference backend
type ServingClient interface {
	// Deploy creates the serving resource for an endpoint from its uploaded
	// model package.
	Deploy(ctx context.Context, namespace string, ep *domain.Endpoint, pkg *domain.ModelPackage, image string) (*ServingDeployment, error)

	// Undeploy deletes the serving resource from the backend
	Undeploy(ctx context.Context, namespace, name string) error

	// GetStatus retrieves current endpoint status from the backend
	GetStatus(ctx context.Context, namespace, name string) (*ServingStatus, error)

	// IsAvailable checks if the serving integration is enabled and configured
	IsAvailable() bool
}
