package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewTrainingJob(t *testing.T) {
	projectID := uuid.New()

	job, err := NewTrainingJob(projectID, "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	assert.NoError(t, err)
	assert.Equal(t, JobStatePending, job.State)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.NotNil(t, job.Hyperparameters)

	_, err = NewTrainingJob(projectID, "", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	assert.ErrorIs(t, err, ErrInvalidTrainingJobName)

	_, err = NewTrainingJob(uuid.Nil, "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	assert.ErrorIs(t, err, ErrMissingProjectID)

	_, err = NewTrainingJob(projectID, "ft-1", "tinyllama-1.1b-chat", "", 1)
	assert.ErrorIs(t, err, ErrInvalidInstanceType)

	_, err = NewTrainingJob(projectID, "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 0)
	assert.ErrorIs(t, err, ErrInvalidInstanceCount)
}

func TestTrainingJob_Lifecycle(t *testing.T) {
	job, err := NewTrainingJob(uuid.New(), "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	assert.NoError(t, err)

	job.MarkStarted()
	assert.Equal(t, JobStateInProgress, job.State)
	assert.NotNil(t, job.StartedAt)
	assert.False(t, job.State.IsTerminal())

	job.MarkCompleted()
	assert.Equal(t, JobStateCompleted, job.State)
	assert.NotNil(t, job.FinishedAt)
	assert.True(t, job.State.IsTerminal())
}

func TestTrainingJob_MarkFailed(t *testing.T) {
	job, _ := NewTrainingJob(uuid.New(), "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)

	job.MarkFailed("CUDA out of memory")
	assert.Equal(t, JobStateFailed, job.State)
	assert.Equal(t, "CUDA out of memory", job.FailureReason)
	assert.NotNil(t, job.FinishedAt)
	assert.True(t, job.State.IsTerminal())
}

func TestTrainingJob_RequestStop(t *testing.T) {
	job, _ := NewTrainingJob(uuid.New(), "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)

	assert.NoError(t, job.RequestStop())
	assert.Equal(t, JobStateStopping, job.State)

	job.MarkStopped()
	assert.Equal(t, JobStateStopped, job.State)
	assert.True(t, job.State.IsTerminal())

	// Terminal jobs cannot be stopped again
	assert.ErrorIs(t, job.RequestStop(), ErrJobNotStoppable)
}

func TestTrainingJob_RequestStop_InProgress(t *testing.T) {
	job, _ := NewTrainingJob(uuid.New(), "ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkStarted()

	assert.NoError(t, job.RequestStop())
	assert.Equal(t, JobStateStopping, job.State)
}

func TestTrainingJobState_IsValid(t *testing.T) {
	assert.True(t, JobStatePending.IsValid())
	assert.True(t, JobStateStopping.IsValid())
	assert.False(t, TrainingJobState("RUNNING").IsValid())
}
