package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

func TestCreateTrainingJob(t *testing.T) {
	m, r := setupRouter()

	projectID := uuid.New()
	m.jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)
	m.launcher.On("IsAvailable").Return(true)
	m.launcher.On("SubmitTrainingJob", mock.Anything, "llm-training", mock.AnythingOfType("*domain.TrainingJob")).
		Return(&ports.TrainingSubmission{ExternalID: "uid-123"}, nil)
	m.jobRepo.On("Update", mock.Anything, projectID, mock.AnythingOfType("*domain.TrainingJob")).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"name":           "tl-ft-1",
		"base_model_id":  "tinyllama-1.1b-chat",
		"instance_type":  "ml.g5.12xlarge",
		"instance_count": 2,
		"hyperparameters": map[string]string{
			"learning_rate": "1e-5",
		},
	})

	req, _ := http.NewRequest("POST", "/api/v1/llm-platform/training_jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-ID", projectID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	job := resp["job"].(map[string]interface{})
	assert.Equal(t, "PENDING", job["state"])
	assert.Equal(t, "uid-123", job["external_id"])

	hp := job["hyperparameters"].(map[string]interface{})
	assert.Equal(t, "1e-5", hp["learning_rate"])
	assert.Equal(t, "2", hp["nnodes"])
	assert.Equal(t, "4", hp["nproc_per_node"])
}

func TestCreateTrainingJob_NotTrainable(t *testing.T) {
	_, r := setupRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"name":           "mx-ft-1",
		"base_model_id":  "mixtral-8x7b-instruct",
		"instance_type":  "ml.p4d.24xlarge",
		"instance_count": 2,
	})

	req, _ := http.NewRequest("POST", "/api/v1/llm-platform/training_jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-ID", uuid.New().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTrainingJob_MissingInstanceType(t *testing.T) {
	_, r := setupRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "tl-ft-1",
		"base_model_id": "tinyllama-1.1b-chat",
	})

	req, _ := http.NewRequest("POST", "/api/v1/llm-platform/training_jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-ID", uuid.New().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTrainingJob_ByName(t *testing.T) {
	m, r := setupRouter()

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	m.jobRepo.On("GetByName", mock.Anything, projectID, "tl-ft-1").Return(job, nil)

	req, _ := http.NewRequest("GET", "/api/v1/llm-platform/training_jobs/tl-ft-1", nil)
	req.Header.Set("X-Project-ID", projectID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, job.ID.String(), resp["id"])
}

func TestStopTrainingJob(t *testing.T) {
	m, r := setupRouter()

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkStarted()

	m.jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)
	m.launcher.On("IsAvailable").Return(true)
	m.launcher.On("StopTrainingJob", mock.Anything, "llm-training", "tl-ft-1").Return(nil)
	m.jobRepo.On("Update", mock.Anything, projectID, job).Return(nil)

	req, _ := http.NewRequest("POST", "/api/v1/llm-platform/training_jobs/"+job.ID.String()+"/stop", nil)
	req.Header.Set("X-Project-ID", projectID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "STOPPING", resp["state"])
}

func TestStopTrainingJob_Terminal(t *testing.T) {
	m, r := setupRouter()

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkCompleted()

	m.jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)

	req, _ := http.NewRequest("POST", "/api/v1/llm-platform/training_jobs/"+job.ID.String()+"/stop", nil)
	req.Header.Set("X-Project-ID", projectID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncTrainingJob(t *testing.T) {
	m, r := setupRouter()

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)
	job.MarkStarted()

	m.jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)
	m.launcher.On("IsAvailable").Return(true)
	m.launcher.On("GetTrainingJobStatus", mock.Anything, "llm-training", "tl-ft-1").
		Return(&ports.TrainingStatus{State: domain.JobStateCompleted}, nil)
	m.jobRepo.On("Update", mock.Anything, projectID, job).Return(nil)

	req, _ := http.NewRequest("POST", "/api/v1/llm-platform/training_jobs/"+job.ID.String()+"/sync", nil)
	req.Header.Set("X-Project-ID", projectID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "COMPLETED", resp["state"])
}

func TestDeleteTrainingJob_NotTerminal(t *testing.T) {
	m, r := setupRouter()

	projectID := uuid.New()
	job, _ := domain.NewTrainingJob(projectID, "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.xlarge", 1)

	m.jobRepo.On("GetByID", mock.Anything, projectID, job.ID).Return(job, nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/llm-platform/training_jobs/"+job.ID.String(), nil)
	req.Header.Set("X-Project-ID", projectID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
