package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrainingJobState represents the state of a managed training job
type TrainingJobState string

const (
	JobStatePending    TrainingJobState = "PENDING"
	JobStateInProgress TrainingJobState = "IN_PROGRESS"
	JobStateCompleted  TrainingJobState = "COMPLETED"
	JobStateFailed     TrainingJobState = "FAILED"
	JobStateStopping   TrainingJobState = "STOPPING"
	JobStateStopped    TrainingJobState = "STOPPED"
)

// IsValid checks if the state is valid
func (s TrainingJobState) IsValid() bool {
	switch s {
	case JobStatePending, JobStateInProgress, JobStateCompleted,
		JobStateFailed, JobStateStopping, JobStateStopped:
		return true
	}
	return false
}

// IsTerminal returns true for states the job cannot leave.
func (s TrainingJobState) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateFailed || s == JobStateStopped
}

// TrainingJob represents a fine-tuning run handed off to the launcher
// backend. The job itself only carries configuration; the distributed
// training mechanics live entirely inside the launched containers.
type TrainingJob struct {
	ID              uuid.UUID         `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	ProjectID       uuid.UUID         `json:"project_id"`
	Name            string            `json:"name"`
	BaseModelID     string            `json:"base_model_id"`
	ContainerImage  string            `json:"container_image"`
	Hyperparameters map[string]string `json:"hyperparameters"`
	InstanceType    string            `json:"instance_type"`
	InstanceCount   int               `json:"instance_count"`
	InputDataURI    string            `json:"input_data_uri"`
	OutputURI       string            `json:"output_uri"`
	State           TrainingJobState  `json:"state"`
	ExternalID      string            `json:"external_id"` // launcher resource UID
	FailureReason   string            `json:"failure_reason"`
	StartedAt       *time.Time        `json:"started_at,omitempty"`
	FinishedAt      *time.Time        `json:"finished_at,omitempty"`
}

// NewTrainingJob creates a new TrainingJob with validation
func NewTrainingJob(projectID uuid.UUID, name, baseModelID, instanceType string, instanceCount int) (*TrainingJob, error) {
	if name == "" {
		return nil, ErrInvalidTrainingJobName
	}
	if projectID == uuid.Nil {
		return nil, ErrMissingProjectID
	}
	if instanceType == "" {
		return nil, ErrInvalidInstanceType
	}
	if instanceCount < 1 {
		return nil, ErrInvalidInstanceCount
	}

	now := time.Now()
	return &TrainingJob{
		ID:              uuid.New(),
		CreatedAt:       now,
		UpdatedAt:       now,
		ProjectID:       projectID,
		Name:            name,
		BaseModelID:     baseModelID,
		Hyperparameters: make(map[string]string),
		InstanceType:    instanceType,
		InstanceCount:   instanceCount,
		State:           JobStatePending,
	}, nil
}

// MarkStarted transitions the job to IN_PROGRESS.
func (j *TrainingJob) MarkStarted() {
	now := time.Now()
	j.State = JobStateInProgress
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkCompleted transitions the job to COMPLETED.
func (j *TrainingJob) MarkCompleted() {
	now := time.Now()
	j.State = JobStateCompleted
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// MarkFailed records the failure reason and finishes the job.
func (j *TrainingJob) MarkFailed(reason string) {
	now := time.Now()
	j.State = JobStateFailed
	j.FailureReason = reason
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// RequestStop transitions a running job to STOPPING.
func (j *TrainingJob) RequestStop() error {
	if j.State != JobStatePending && j.State != JobStateInProgress {
		return ErrJobNotStoppable
	}
	j.State = JobStateStopping
	j.UpdatedAt = time.Now()
	return nil
}

// MarkStopped finishes a stop requested earlier.
func (j *TrainingJob) MarkStopped() {
	now := time.Now()
	j.State = JobStateStopped
	j.FinishedAt = &now
	j.UpdatedAt = now
}

// SetExternalID sets the launcher resource UID
func (j *TrainingJob) SetExternalID(externalID string) {
	j.ExternalID = externalID
	j.UpdatedAt = time.Now()
}
