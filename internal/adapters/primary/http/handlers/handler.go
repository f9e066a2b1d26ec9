package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/services"
)

type Handler struct {
	catalogSvc   *services.CatalogService
	packagingSvc *services.PackagingService
	trainingSvc  *services.TrainingService
	endpointSvc  *services.EndpointService
	invokeSvc    *services.InvocationService
}

func New(
	catalogSvc *services.CatalogService,
	packagingSvc *services.PackagingService,
	trainingSvc *services.TrainingService,
	endpointSvc *services.EndpointService,
	invokeSvc *services.InvocationService,
) *Handler {
	return &Handler{
		catalogSvc:   catalogSvc,
		packagingSvc: packagingSvc,
		trainingSvc:  trainingSvc,
		endpointSvc:  endpointSvc,
		invokeSvc:    invokeSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Base Model Catalog
	r.GET("/base_models", h.ListBaseModels)
	r.GET("/base_models/:id", h.GetBaseModel)

	// Model Packages
	r.POST("/packages", h.BuildPackage)
	r.GET("/packages", h.ListPackages)
	r.GET("/packages/:id", h.GetPackage)
	r.DELETE("/packages/:id", h.DeletePackage)
	r.GET("/packages/:id/download_url", h.GetPackageDownloadURL)
	r.GET("/packages/:id/archive", h.DownloadPackageArchive)

	// Training Jobs
	r.POST("/training_jobs", h.CreateTrainingJob)
	r.GET("/training_jobs", h.ListTrainingJobs)
	r.GET("/training_jobs/:id", h.GetTrainingJob)
	r.POST("/training_jobs/:id/stop", h.StopTrainingJob)
	r.POST("/training_jobs/:id/sync", h.SyncTrainingJob)
	r.DELETE("/training_jobs/:id", h.DeleteTrainingJob)

	// Endpoints
	r.POST("/endpoints", h.DeployEndpoint)
	r.GET("/endpoints", h.ListEndpoints)
	r.GET("/endpoints/:id", h.GetEndpoint)
	r.DELETE("/endpoints/:id", h.DeleteEndpoint)
	r.POST("/endpoints/:id/sync", h.SyncEndpoint)

	// Invocations
	r.POST("/endpoints/:id/invocations", h.InvokeEndpoint)
}

func getProjectID(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader("X-Project-ID")
	if header == "" {
		return uuid.Nil, domain.ErrMissingProjectID
	}
	return uuid.Parse(header)
}
