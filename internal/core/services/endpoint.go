package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/build-language-models-on-aws/internal/catalog"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

type EndpointService struct {
	endpointRepo ports.EndpointRepository
	pkgRepo      ports.ModelPackageRepository
	serving      ports.ServingClient
	namespace    string
}

func NewEndpointService(
	endpointRepo ports.EndpointRepository,
	pkgRepo ports.ModelPackageRepository,
	serving ports.ServingClient,
	namespace string,
) *EndpointService {
	return &EndpointService{
		endpointRepo: endpointRepo,
		pkgRepo:      pkgRepo,
		serving:      serving,
		namespace:    namespace,
	}
}

type DeployRequest struct {
	ProjectID      uuid.UUID
	ModelPackageID uuid.UUID
	Name           string
	InstanceType   string
	InstanceCount  int
	Labels         map[string]string
}

type DeployResult struct {
	Endpoint *domain.Endpoint
	Status   string
	Message  string
}

// Deploy creates an endpoint for an uploaded model package and submits it to
// the serving backend when one is configured.
func (s *EndpointService) Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	pkg, err := s.pkgRepo.GetByID(ctx, req.ProjectID, req.ModelPackageID)
	if err != nil {
		return nil, fmt.Errorf("get model package: %w", err)
	}
	if !pkg.IsUploaded() {
		return nil, domain.ErrPackageNotUploaded
	}

	if spec, specErr := catalog.Get(pkg.BaseModelID); specErr == nil {
		if catalog.GPUsPerInstance(req.InstanceType) < spec.GPUCount {
			return nil, fmt.Errorf("%w: %s provides %d, %s needs %d",
				domain.ErrInsufficientGPUs, req.InstanceType,
				catalog.GPUsPerInstance(req.InstanceType), spec.ID, spec.GPUCount)
		}
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("%s-%s", pkg.Name, pkg.ID.String()[:8])
	}

	ep, err := domain.NewEndpoint(req.ProjectID, name, pkg.ID, req.InstanceType, req.InstanceCount)
	if err != nil {
		return nil, err
	}
	if req.Labels != nil {
		ep.Labels = req.Labels
	}

	if err := s.endpointRepo.Create(ctx, ep); err != nil {
		return nil, err
	}

	if s.serving == nil || !s.serving.IsAvailable() {
		return &DeployResult{
			Endpoint: ep,
			Status:   string(domain.EndpointStateCreating),
			Message:  "Endpoint registered; serving backend disabled",
		}, nil
	}

	image := s.inferenceImage(pkg.BaseModelID)
	deployment, err := s.serving.Deploy(ctx, s.namespace, ep, pkg, image)
	if err != nil {
		ep.MarkFailed(err.Error())
		if uerr := s.endpointRepo.Update(ctx, req.ProjectID, ep); uerr != nil {
			log.WithError(uerr).Error("persist failed endpoint state")
		}
		return &DeployResult{
			Endpoint: ep,
			Status:   string(domain.EndpointStateFailed),
			Message:  err.Error(),
		}, nil
	}

	ep.SetExternalID(deployment.ExternalID)
	if deployment.URL != "" {
		ep.MarkInService(deployment.URL)
	}
	if err := s.endpointRepo.Update(ctx, req.ProjectID, ep); err != nil {
		return nil, err
	}

	return &DeployResult{
		Endpoint: ep,
		Status:   string(ep.CurrentState),
		Message:  "Deployment initiated",
	}, nil
}

func (s *EndpointService) Get(ctx context.Context, projectID, id uuid.UUID) (*domain.Endpoint, error) {
	return s.endpointRepo.GetByID(ctx, projectID, id)
}

// GetByName resolves an endpoint by its project-unique name.
func (s *EndpointService) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.Endpoint, error) {
	return s.endpointRepo.GetByName(ctx, projectID, name)
}

func (s *EndpointService) List(ctx context.Context, filter ports.EndpointListFilter) ([]*domain.Endpoint, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.endpointRepo.List(ctx, filter)
}

// Delete tears the endpoint down on the backend and marks it deleted.
func (s *EndpointService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	ep, err := s.endpointRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return err
	}

	ep.MarkDeleting()

	if s.serving != nil && s.serving.IsAvailable() {
		// Ignore error - might already be deleted
		_ = s.serving.Undeploy(ctx, s.namespace, ep.Name)
	}

	ep.MarkDeleted()
	return s.endpointRepo.Update(ctx, projectID, ep)
}

// Sync pulls the backend's view of the endpoint and reconciles local state.
func (s *EndpointService) Sync(ctx context.Context, projectID, id uuid.UUID) (*domain.Endpoint, error) {
	ep, err := s.endpointRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if s.serving == nil || !s.serving.IsAvailable() || !ep.IsLive() {
		return ep, nil
	}

	status, err := s.serving.GetStatus(ctx, s.namespace, ep.Name)
	if err != nil {
		return nil, fmt.Errorf("get endpoint status: %w", err)
	}

	if status.Ready {
		ep.MarkInService(status.URL)
	} else if status.Error != "" {
		ep.MarkFailed(status.Error)
	}

	if err := s.endpointRepo.Update(ctx, projectID, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

func (s *EndpointService) inferenceImage(baseModelID string) string {
	spec, err := catalog.Get(baseModelID)
	if err != nil {
		return ""
	}
	return spec.InferenceImage
}
