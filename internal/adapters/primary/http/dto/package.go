package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

// ============================================================================
// Model Package DTOs
// ============================================================================

type BuildPackageRequest struct {
	Name         string            `json:"name" binding:"required,max=100"`
	BaseModelID  string            `json:"base_model_id" binding:"required"`
	Overrides    map[string]string `json:"overrides"`
	Requirements []string          `json:"requirements"`
	Labels       map[string]string `json:"labels"`
}

type ModelPackageResponse struct {
	ID          uuid.UUID         `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Name        string            `json:"name"`
	BaseModelID string            `json:"base_model_id"`
	Properties  string            `json:"properties"`
	StorageURI  string            `json:"storage_uri,omitempty"`
	Checksum    string            `json:"checksum,omitempty"`
	SizeBytes   int64             `json:"size_bytes,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

type ListModelPackagesResponse struct {
	Items      []ModelPackageResponse `json:"items"`
	Total      int                    `json:"total"`
	PageSize   int                    `json:"page_size"`
	NextOffset int                    `json:"next_offset"`
}

type PackageDownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToModelPackageResponse(pkg *domain.ModelPackage) ModelPackageResponse {
	return ModelPackageResponse{
		ID:          pkg.ID,
		CreatedAt:   pkg.CreatedAt,
		UpdatedAt:   pkg.UpdatedAt,
		Name:        pkg.Name,
		BaseModelID: pkg.BaseModelID,
		Properties:  pkg.Properties.Render(),
		StorageURI:  pkg.StorageURI,
		Checksum:    pkg.Checksum,
		SizeBytes:   pkg.SizeBytes,
		Labels:      pkg.Labels,
	}
}
