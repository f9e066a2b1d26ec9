package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/build-language-models-on-aws/internal/catalog"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

type TrainingService struct {
	jobRepo   ports.TrainingJobRepository
	launcher  ports.LauncherClient
	namespace string
}

func NewTrainingService(jobRepo ports.TrainingJobRepository, launcher ports.LauncherClient, namespace string) *TrainingService {
	return &TrainingService{
		jobRepo:   jobRepo,
		launcher:  launcher,
		namespace: namespace,
	}
}

type CreateTrainingJobRequest struct {
	ProjectID       uuid.UUID
	Name            string
	BaseModelID     string
	Hyperparameters map[string]string
	InstanceType    string
	InstanceCount   int
	InputDataURI    string
	OutputURI       string
	ContainerImage  string
}

type CreateTrainingJobResult struct {
	Job     *domain.TrainingJob
	Status  string
	Message string
}

// Create validates the request against the catalog, assembles the final
// hyperparameter set, persists the job, and hands it to the launcher when one
// is configured.
func (s *TrainingService) Create(ctx context.Context, req CreateTrainingJobRequest) (*CreateTrainingJobResult, error) {
	spec, err := catalog.Get(req.BaseModelID)
	if err != nil {
		return nil, err
	}
	if !spec.Trainable {
		return nil, domain.ErrBaseModelNotTrainable
	}

	job, err := domain.NewTrainingJob(req.ProjectID, req.Name, spec.ID, req.InstanceType, req.InstanceCount)
	if err != nil {
		return nil, err
	}

	job.ContainerImage = req.ContainerImage
	if job.ContainerImage == "" {
		job.ContainerImage = spec.TrainingImage
	}
	job.InputDataURI = req.InputDataURI
	job.OutputURI = req.OutputURI
	job.Hyperparameters = assembleHyperparameters(spec, req)

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if s.launcher == nil || !s.launcher.IsAvailable() {
		return &CreateTrainingJobResult{
			Job:     job,
			Status:  string(domain.JobStatePending),
			Message: "Job registered; launcher backend disabled",
		}, nil
	}

	submission, err := s.launcher.SubmitTrainingJob(ctx, s.namespace, job)
	if err != nil {
		job.MarkFailed(err.Error())
		if uerr := s.jobRepo.Update(ctx, req.ProjectID, job); uerr != nil {
			log.WithError(uerr).Error("persist failed training job state")
		}
		return &CreateTrainingJobResult{
			Job:     job,
			Status:  string(domain.JobStateFailed),
			Message: err.Error(),
		}, nil
	}

	job.SetExternalID(submission.ExternalID)
	if err := s.jobRepo.Update(ctx, req.ProjectID, job); err != nil {
		return nil, err
	}

	return &CreateTrainingJobResult{
		Job:     job,
		Status:  string(domain.JobStatePending),
		Message: "Training job submitted",
	}, nil
}

func (s *TrainingService) Get(ctx context.Context, projectID, id uuid.UUID) (*domain.TrainingJob, error) {
	return s.jobRepo.GetByID(ctx, projectID, id)
}

// GetByName resolves a job by its project-unique name.
func (s *TrainingService) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.TrainingJob, error) {
	return s.jobRepo.GetByName(ctx, projectID, name)
}

func (s *TrainingService) List(ctx context.Context, filter ports.JobListFilter) ([]*domain.TrainingJob, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.jobRepo.List(ctx, filter)
}

// Stop requests a stop for a pending or running job.
func (s *TrainingService) Stop(ctx context.Context, projectID, id uuid.UUID) (*domain.TrainingJob, error) {
	job, err := s.jobRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if err := job.RequestStop(); err != nil {
		return nil, err
	}

	if s.launcher != nil && s.launcher.IsAvailable() {
		// Might already be gone on the backend side.
		_ = s.launcher.StopTrainingJob(ctx, s.namespace, job.Name)
	}

	if err := s.jobRepo.Update(ctx, projectID, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Sync pulls the launcher's view of the job and reconciles local state.
func (s *TrainingService) Sync(ctx context.Context, projectID, id uuid.UUID) (*domain.TrainingJob, error) {
	job, err := s.jobRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if s.launcher == nil || !s.launcher.IsAvailable() || job.State.IsTerminal() {
		return job, nil
	}

	status, err := s.launcher.GetTrainingJobStatus(ctx, s.namespace, job.Name)
	if err != nil {
		return nil, fmt.Errorf("get training job status: %w", err)
	}

	switch status.State {
	case domain.JobStateInProgress:
		if job.State == domain.JobStatePending {
			job.MarkStarted()
		}
	case domain.JobStateCompleted:
		job.MarkCompleted()
	case domain.JobStateFailed:
		job.MarkFailed(status.Reason)
	case domain.JobStateStopped:
		job.MarkStopped()
	}

	if err := s.jobRepo.Update(ctx, projectID, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a terminal job record.
func (s *TrainingService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return err
	}
	if !job.State.IsTerminal() {
		return domain.ErrJobNotTerminal
	}
	return s.jobRepo.Delete(ctx, projectID, id)
}

// assembleHyperparameters layers user overrides on the preset defaults, then
// pins the torchrun distribution parameters to the requested instance
// topology so they can never disagree with it.
func assembleHyperparameters(spec *catalog.ModelSpec, req CreateTrainingJobRequest) map[string]string {
	hp := make(map[string]string, len(spec.DefaultHyperparameters)+len(req.Hyperparameters)+4)
	for k, v := range spec.DefaultHyperparameters {
		hp[k] = v
	}
	for k, v := range req.Hyperparameters {
		hp[k] = v
	}

	hp["model_id"] = spec.SourceID
	hp["nnodes"] = strconv.Itoa(req.InstanceCount)
	hp["nproc_per_node"] = strconv.Itoa(catalog.GPUsPerInstance(req.InstanceType))

	return hp
}
