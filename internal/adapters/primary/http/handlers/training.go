package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/services"
)

func (h *Handler) CreateTrainingJob(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.CreateTrainingJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.trainingSvc.Create(c.Request.Context(), services.CreateTrainingJobRequest{
		ProjectID:       projectID,
		Name:            req.Name,
		BaseModelID:     req.BaseModelID,
		Hyperparameters: req.Hyperparameters,
		InstanceType:    req.InstanceType,
		InstanceCount:   req.InstanceCount,
		InputDataURI:    req.InputDataURI,
		OutputURI:       req.OutputURI,
		ContainerImage:  req.ContainerImage,
	})
	if err != nil {
		log.WithError(err).Error("create training job failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.CreateTrainingJobResponse{
		Job:     dto.ToTrainingJobResponse(result.Job),
		Status:  result.Status,
		Message: result.Message,
	})
}

func (h *Handler) GetTrainingJob(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	// Anything that isn't a UUID is treated as a job name.
	var job *domain.TrainingJob
	if id, parseErr := uuid.Parse(c.Param("id")); parseErr == nil {
		job, err = h.trainingSvc.Get(c.Request.Context(), projectID, id)
	} else {
		job, err = h.trainingSvc.GetByName(c.Request.Context(), projectID, c.Param("id"))
	}
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrainingJobResponse(job))
}

func (h *Handler) ListTrainingJobs(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, total, err := h.trainingSvc.List(c.Request.Context(), ports.JobListFilter{
		ProjectID:   projectID,
		State:       c.Query("state"),
		BaseModelID: c.Query("base_model_id"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		log.WithError(err).Error("list training jobs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.TrainingJobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, dto.ToTrainingJobResponse(job))
	}

	c.JSON(http.StatusOK, dto.ListTrainingJobsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) StopTrainingJob(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid training job id"})
		return
	}

	job, err := h.trainingSvc.Stop(c.Request.Context(), projectID, id)
	if err != nil {
		log.WithError(err).Error("stop training job failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToTrainingJobResponse(job))
}

func (h *Handler) SyncTrainingJob(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid training job id"})
		return
	}

	job, err := h.trainingSvc.Sync(c.Request.Context(), projectID, id)
	if err != nil {
		log.WithError(err).Error("sync training job failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrainingJobResponse(job))
}

func (h *Handler) DeleteTrainingJob(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid training job id"})
		return
	}

	if err := h.trainingSvc.Delete(c.Request.Context(), projectID, id); err != nil {
		log.WithError(err).Error("delete training job failed")
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
