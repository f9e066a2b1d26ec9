package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

// ============================================================================
// Training Job DTOs
// ============================================================================

type CreateTrainingJobRequest struct {
	Name            string            `json:"name" binding:"required,max=100"`
	BaseModelID     string            `json:"base_model_id" binding:"required"`
	Hyperparameters map[string]string `json:"hyperparameters"`
	InstanceType    string            `json:"instance_type" binding:"required"`
	InstanceCount   int               `json:"instance_count" binding:"required,min=1"`
	InputDataURI    string            `json:"input_data_uri"`
	OutputURI       string            `json:"output_uri"`
	ContainerImage  string            `json:"container_image"`
}

type TrainingJobResponse struct {
	ID              uuid.UUID         `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Name            string            `json:"name"`
	BaseModelID     string            `json:"base_model_id"`
	ContainerImage  string            `json:"container_image"`
	Hyperparameters map[string]string `json:"hyperparameters"`
	InstanceType    string            `json:"instance_type"`
	InstanceCount   int               `json:"instance_count"`
	InputDataURI    string            `json:"input_data_uri,omitempty"`
	OutputURI       string            `json:"output_uri,omitempty"`
	State           string            `json:"state"`
	ExternalID      string            `json:"external_id,omitempty"`
	FailureReason   string            `json:"failure_reason,omitempty"`
	StartedAt       *time.Time        `json:"started_at,omitempty"`
	FinishedAt      *time.Time        `json:"finished_at,omitempty"`
}

type CreateTrainingJobResponse struct {
	Job     TrainingJobResponse `json:"job"`
	Status  string              `json:"status"`
	Message string              `json:"message"`
}

type ListTrainingJobsResponse struct {
	Items      []TrainingJobResponse `json:"items"`
	Total      int                   `json:"total"`
	PageSize   int                   `json:"page_size"`
	NextOffset int                   `json:"next_offset"`
}

func ToTrainingJobResponse(job *domain.TrainingJob) TrainingJobResponse {
	return TrainingJobResponse{
		ID:              job.ID,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
		Name:            job.Name,
		BaseModelID:     job.BaseModelID,
		ContainerImage:  job.ContainerImage,
		Hyperparameters: job.Hyperparameters,
		InstanceType:    job.InstanceType,
		InstanceCount:   job.InstanceCount,
		InputDataURI:    job.InputDataURI,
		OutputURI:       job.OutputURI,
		State:           string(job.State),
		ExternalID:      job.ExternalID,
		FailureReason:   job.FailureReason,
		StartedAt:       job.StartedAt,
		FinishedAt:      job.FinishedAt,
	}
}
