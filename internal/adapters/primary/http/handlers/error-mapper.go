package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrBaseModelNotFound),
		errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrTrainingJobNotFound),
		errors.Is(err, domain.ErrEndpointNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrPackageNameConflict),
		errors.Is(err, domain.ErrTrainingJobNameConflict),
		errors.Is(err, domain.ErrEndpointNameConflict),
		errors.Is(err, domain.ErrPackageInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingProjectID),
		errors.Is(err, domain.ErrBaseModelNotTrainable),
		errors.Is(err, domain.ErrMissingModelID),
		errors.Is(err, domain.ErrUnsupportedEngine),
		errors.Is(err, domain.ErrInvalidParallelDegree),
		errors.Is(err, domain.ErrInvalidBatchSize),
		errors.Is(err, domain.ErrMalformedProperties),
		errors.Is(err, domain.ErrInvalidPackageName),
		errors.Is(err, domain.ErrPackageNotUploaded),
		errors.Is(err, domain.ErrInvalidTrainingJobName),
		errors.Is(err, domain.ErrInvalidInstanceCount),
		errors.Is(err, domain.ErrInvalidInstanceType),
		errors.Is(err, domain.ErrJobNotStoppable),
		errors.Is(err, domain.ErrJobNotTerminal),
		errors.Is(err, domain.ErrInvalidEndpointName),
		errors.Is(err, domain.ErrInsufficientGPUs),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrEmptyInvocationPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Upstream failures
	case errors.Is(err, domain.ErrEndpointNotInService),
		errors.Is(err, domain.ErrInvocationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrLauncherNotAvailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
