package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

func (h *Handler) InvokeEndpoint(c *gin.Context) {
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

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read payload: " + err.Error()})
		return
	}

	result, err := h.invokeSvc.Invoke(c.Request.Context(), projectID, id, payload)
	if err != nil {
		log.WithError(err).Error("invoke endpoint failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InvocationResponse{
		Output:    result.Output,
		LatencyMS: result.LatencyMS,
	})
}
