package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
	"github.com/aws-samples/build-language-models-on-aws/internal/testutil"
)

func TestTrainingService_Create_NoLauncher(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	svc := NewTrainingService(jobRepo, nil, "llm-training")

	jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)

	result, err := svc.Create(context.Background(), CreateTrainingJobRequest{
		ProjectID:     uuid.New(),
		Name:          "tl-ft-1",
		BaseModelID:   "tinyllama-1.1b-chat",
		InstanceType:  "ml.g5.12xlarge",
		InstanceCount: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, string(domain.JobStatePending), result.Status)
	assert.Empty(t, result.Job.ExternalID)

	// Catalog defaults layered in, distribution pinned to the topology
	hp := result.Job.Hyperparameters
	assert.Equal(t, "2e-5", hp["learning_rate"])
	assert.Equal(t, "2", hp["nnodes"])
	assert.Equal(t, "4", hp["nproc_per_node"])
	assert.Equal(t, "TinyLlama/TinyLlama-1.1B-Chat-v1.0", hp["model_id"])
}

func TestTrainingService_Create_OverridesCannotUnpinTopology(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	svc := NewTrainingService(jobRepo, nil, "llm-training")

	jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)

	result, err := svc.Create(context.Background(), CreateTrainingJobRequest{
		ProjectID:   uuid.New(),
		Name:        "tl-ft-1",
		BaseModelID: "tinyllama-1.1b-chat",
		Hyperparameters: map[string]string{
			"learning_rate": "1e-5",
			"nnodes":        "99",
		},
		InstanceType:  "ml.g5.xlarge",
		InstanceCount: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "1e-5", result.Job.Hyperparameters["learning_rate"])
	assert.Equal(t, "1", result.Job.Hyperparameters["nnodes"])
}

func TestTrainingService_Create_NotTrainable(t *testing.T) {
	svc := NewTrainingService(new(testutil.MockTrainingJobRepo), nil, "llm-training")

	_, err := svc.Create(context.Background(), CreateTrainingJobRequest{
		ProjectID:     uuid.New(),
		Name:          "mx-ft-1",
		BaseModelID:   "mixtral-8x7b-instruct",
		InstanceType:  "ml.p4d.24xlarge",
		InstanceCount: 2,
	})
	assert.ErrorIs(t, err, domain.ErrBaseModelNotTrainable)
}

func TestTrainingService_Create_Submitted(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	launcher := new(testutil.MockLauncherClient)
	svc := NewTrainingService(jobRepo, launcher, "llm-training")

	projectID := uuid.New()

	jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)
	launcher.On("IsAvailable").Return(true)
	launcher.On("SubmitTrainingJob", mock.Anything, "llm-training", mock.AnythingOfType("*domain.TrainingJob")).
		Return(&ports.TrainingSubmission{ExternalID: "uid-123"}, nil)
	jobRepo.On("Update", mock.Anything, projectID, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)

	result, err := svc.Create(context.Background(), CreateTrainingJobRequest{
		ProjectID:     projectID,
		Name:          "tl-ft-1",
		BaseModelID:   "tinyllama-1.1b-chat",
		InstanceType:  "ml.g5.xlarge",
		InstanceCount: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "uid-123", result.Job.ExternalID)
	assert.Equal(t, string(domain.JobStatePending), result.Status)
	launcher.AssertExpectations(t)
}

func TestTrainingService_Create_SubmitFailed(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	launcher := new(testutil.MockLauncherClient)
	svc := NewTrainingService(jobRepo, launcher, "llm-training")

	projectID := uuid.New()

	jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)
	launcher.On("IsAvailable").Return(true)
	launcher.On("SubmitTrainingJob", mock.Anything, "llm-training", mock.AnythingOfType("*domain.TrainingJob")).
		Return(nil, errors.New("quota exceeded"))
	jobRepo.On("Update", mock.Anything, projectID, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)

	result, err := svc.Create(context.Background(), CreateTrainingJobRequest{
		ProjectID:     projectID,
		Name:          "tl-ft-1",
		BaseModelID:   "tinyllama-1.1b-chat",
		InstanceType:  "ml.g5.xlarge",
		InstanceCount: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, string(domain.JobStateFailed), result.Status)
	assert.Equal(t, domain.JobStateFailed, result.Job.State)
	assert.Contains(t, result.Job.FailureReason, "quota exceeded")
}

func TestTrainingService_Stop(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	launcher := new(testutil.MockLauncherClient)
	svc := NewTrainingService(jobRepo, launcher, "llm-training")

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkStarted()

	jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)
	launcher.On("IsAvailable").Return(true)
	launcher.On("StopTrainingJob", mock.Anything, "llm-training", "tl-ft-1").Return(nil)
	jobRepo.On("Update", mock.Anything, projectID, job).Return(nil)

	stopped, err := svc.Stop(context.Background(), projectID, job.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.JobStateStopping, stopped.State)
}

func TestTrainingService_Stop_Terminal(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	svc := NewTrainingService(jobRepo, nil, "llm-training")

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkCompleted()

	jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)

	_, err := svc.Stop(context.Background(), projectID, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotStoppable)
}

func TestTrainingService_Sync(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	launcher := new(testutil.MockLauncherClient)
	svc := NewTrainingService(jobRepo, launcher, "llm-training")

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)

	jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)
	launcher.On("IsAvailable").Return(true)
	launcher.On("GetTrainingJobStatus", mock.Anything, "llm-training", "tl-ft-1").
		Return(&ports.TrainingStatus{State: domain.JobStateInProgress}, nil)
	jobRepo.On("Update", mock.Anything, projectID, job).Return(nil)

	synced, err := svc.Sync(context.Background(), projectID, job.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.JobStateInProgress, synced.State)
	assert.NotNil(t, synced.StartedAt)
}

func TestTrainingService_Sync_Failed(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	launcher := new(testutil.MockLauncherClient)
	svc := NewTrainingService(jobRepo, launcher, "llm-training")

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkStarted()

	jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)
	launcher.On("IsAvailable").Return(true)
	launcher.On("GetTrainingJobStatus", mock.Anything, "llm-training", "tl-ft-1").
		Return(&ports.TrainingStatus{State: domain.JobStateFailed, Reason: "worker crash"}, nil)
	jobRepo.On("Update", mock.Anything, projectID, job).Return(nil)

	synced, err := svc.Sync(context.Background(), projectID, job.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.JobStateFailed, synced.State)
	assert.Equal(t, "worker crash", synced.FailureReason)
}

func TestTrainingService_Sync_TerminalSkipsBackend(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	launcher := new(testutil.MockLauncherClient)
	svc := NewTrainingService(jobRepo, launcher, "llm-training")

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkCompleted()

	jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)
	launcher.On("IsAvailable").Return(true)

	synced, err := svc.Sync(context.Background(), projectID, job.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.JobStateCompleted, synced.State)
	launcher.AssertNotCalled(t, "GetTrainingJobStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrainingService_Delete_NotTerminal(t *testing.T) {
	jobRepo := new(testutil.MockTrainingJobRepo)
	svc := NewTrainingService(jobRepo, nil, "llm-training")

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)

	jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)

	err := svc.Delete(context.Background(), projectID, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotTerminal)
	jobRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
