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

func (h *Handler) DeployEndpoint(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	var req dto.DeployEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.endpointSvc.Deploy(c.Request.Context(), services.DeployRequest{
		ProjectID:      projectID,
		ModelPackageID: req.ModelPackageID,
		Name:           req.Name,
		InstanceType:   req.InstanceType,
		InstanceCount:  req.InstanceCount,
		Labels:         req.Labels,
	})
	if err != nil {
		log.WithError(err).Error("deploy endpoint failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.DeployEndpointResponse{
		Endpoint: dto.ToEndpointResponse(result.Endpoint),
		Status:   result.Status,
		Message:  result.Message,
	})
}

func (h *Handler) GetEndpoint(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	// Anything that isn't a UUID is treated as an endpoint name.
	var ep *domain.Endpoint
	if id, parseErr := uuid.Parse(c.Param("id")); parseErr == nil {
		ep, err = h.endpointSvc.Get(c.Request.Context(), projectID, id)
	} else {
		ep, err = h.endpointSvc.GetByName(c.Request.Context(), projectID, c.Param("id"))
	}
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEndpointResponse(ep))
}

func (h *Handler) ListEndpoints(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	eps, total, err := h.endpointSvc.List(c.Request.Context(), ports.EndpointListFilter{
		ProjectID: projectID,
		State:     c.Query("state"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		log.WithError(err).Error("list endpoints failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.EndpointResponse, 0, len(eps))
	for _, ep := range eps {
		items = append(items, dto.ToEndpointResponse(ep))
	}

	c.JSON(http.StatusOK, dto.ListEndpointsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) DeleteEndpoint(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endpoint id"})
		return
	}

	if err := h.endpointSvc.Delete(c.Request.Context(), projectID, id); err != nil {
		log.WithError(err).Error("delete endpoint failed")
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SyncEndpoint(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMissingProjectID.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endpoint id"})
		return
	}

	ep, err := h.endpointSvc.Sync(c.Request.Context(), projectID, id)
	if err != nil {
		log.WithError(err).Error("sync endpoint failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEndpointResponse(ep))
}
