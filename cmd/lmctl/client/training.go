package client

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// CreateTrainingJob submits a new training job.
func (c *Client) CreateTrainingJob(req *dto.CreateTrainingJobRequest) (*dto.CreateTrainingJobResponse, error) {
	var resp dto.CreateTrainingJobResponse
	if err := c.doRequest(http.MethodPost, "/training_jobs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTrainingJobs returns training jobs for the project, optionally
// filtered by state and base model.
func (c *Client) ListTrainingJobs(state, baseModelID string, limit, offset int) (*dto.ListTrainingJobsResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if state != "" {
		q.Set("state", state)
	}
	if baseModelID != "" {
		q.Set("base_model_id", baseModelID)
	}

	var resp dto.ListTrainingJobsResponse
	if err := c.doRequest(http.MethodGet, "/training_jobs?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTrainingJob returns a single training job by ID.
func (c *Client) GetTrainingJob(id string) (*dto.TrainingJobResponse, error) {
	var resp dto.TrainingJobResponse
	if err := c.doRequest(http.MethodGet, "/training_jobs/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopTrainingJob requests a graceful stop of a running job.
func (c *Client) StopTrainingJob(id string) (*dto.TrainingJobResponse, error) {
	var resp dto.TrainingJobResponse
	if err := c.doRequest(http.MethodPost, "/training_jobs/"+url.PathEscape(id)+"/stop", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncTrainingJob refreshes the job state from the launcher backend.
func (c *Client) SyncTrainingJob(id string) (*dto.TrainingJobResponse, error) {
	var resp dto.TrainingJobResponse
	if err := c.doRequest(http.MethodPost, "/training_jobs/"+url.PathEscape(id)+"/sync", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTrainingJob removes a terminal training job record.
func (c *Client) DeleteTrainingJob(id string) error {
	return c.doRequest(http.MethodDelete, "/training_jobs/"+url.PathEscape(id), nil, nil)
}
