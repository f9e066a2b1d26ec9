package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModelPackage bundles a serving configuration into an uploadable artifact.
// The archive lives in object storage; the row records where it went and what
// went into it.
type ModelPackage struct {
	ID          uuid.UUID          `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	ProjectID   uuid.UUID          `json:"project_id"`
	Name        string             `json:"name"`
	BaseModelID string             `json:"base_model_id"`
	Properties  *ServingProperties `json:"properties"`
	StorageURI  string             `json:"storage_uri"`
	Checksum    string             `json:"checksum"`
	SizeBytes   int64              `json:"size_bytes"`
	Labels      map[string]string  `json:"labels"`
}

// NewModelPackage creates a new ModelPackage with validation
func NewModelPackage(projectID uuid.UUID, name, baseModelID string, props *ServingProperties) (*ModelPackage, error) {
	if name == "" {
		return nil, ErrInvalidPackageName
	}
	if projectID == uuid.Nil {
		return nil, ErrMissingProjectID
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &ModelPackage{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		ProjectID:   projectID,
		Name:        name,
		BaseModelID: baseModelID,
		Properties:  props,
		Labels:      make(map[string]string),
	}, nil
}

// MarkUploaded records a successful artifact upload.
func (p *ModelPackage) MarkUploaded(uri, checksum string, size int64) {
	p.StorageURI = uri
	p.Checksum = checksum
	p.SizeBytes = size
	p.UpdatedAt = time.Now()
}

// IsUploaded returns true once the archive landed in object storage.
func (p *ModelPackage) IsUploaded() bool {
	return p.StorageURI != ""
}
