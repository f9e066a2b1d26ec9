package domain

import (
	"time"

	"github.com/google/uuid"
)

// EndpointState represents the state of a managed inference endpoint
type EndpointState string

const (
	EndpointStateCreating  EndpointState = "CREATING"
	EndpointStateInService EndpointState = "IN_SERVICE"
	EndpointStateFailed    EndpointState = "FAILED"
	EndpointStateDeleting  EndpointState = "DELETING"
	EndpointStateDeleted   EndpointState = "DELETED"
)

// IsValid checks if the state is valid
func (s EndpointState) IsValid() bool {
	switch s {
	case EndpointStateCreating, EndpointStateInService, EndpointStateFailed,
		EndpointStateDeleting, EndpointStateDeleted:
		return true
	}
	return false
}

// Endpoint represents a hosted model serving endpoint backed by an uploaded
// model package.
type Endpoint struct {
	ID             uuid.UUID         `json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	ProjectID      uuid.UUID         `json:"project_id"`
	Name           string            `json:"name"`
	ModelPackageID uuid.UUID         `json:"model_package_id"`
	InstanceType   string            `json:"instance_type"`
	InstanceCount  int               `json:"instance_count"`
	DesiredState   EndpointState     `json:"desired_state"`
	CurrentState   EndpointState     `json:"current_state"`
	ExternalID     string            `json:"external_id"` // backend resource UID
	URL            string            `json:"url"`
	LastError      string            `json:"last_error"`
	Labels         map[string]string `json:"labels"`

	// Computed/joined fields
	ModelPackageName string `json:"model_package_name,omitempty"`
}

// NewEndpoint creates a new Endpoint with validation
func NewEndpoint(projectID uuid.UUID, name string, packageID uuid.UUID, instanceType string, instanceCount int) (*Endpoint, error) {
	if name == "" {
		return nil, ErrInvalidEndpointName
	}
	if projectID == uuid.Nil {
		return nil, ErrMissingProjectID
	}
	if packageID == uuid.Nil {
		return nil, ErrPackageNotFound
	}
	if instanceType == "" {
		return nil, ErrInvalidInstanceType
	}
	if instanceCount < 1 {
		return nil, ErrInvalidInstanceCount
	}

	now := time.Now()
	return &Endpoint{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		ProjectID:      projectID,
		Name:           name,
		ModelPackageID: packageID,
		InstanceType:   instanceType,
		InstanceCount:  instanceCount,
		DesiredState:   EndpointStateInService,
		CurrentState:   EndpointStateCreating,
		Labels:         make(map[string]string),
	}, nil
}

// MarkInService updates current state to in-service with endpoint URL
func (e *Endpoint) MarkInService(url string) {
	e.CurrentState = EndpointStateInService
	e.URL = url
	e.LastError = ""
	e.UpdatedAt = time.Now()
}

// MarkFailed records deployment failure. The URL is cleared so only
// in-service endpoints advertise one.
func (e *Endpoint) MarkFailed(err string) {
	e.CurrentState = EndpointStateFailed
	e.LastError = err
	e.URL = ""
	e.UpdatedAt = time.Now()
}

// MarkDeleting flags the endpoint for teardown.
func (e *Endpoint) MarkDeleting() {
	e.DesiredState = EndpointStateDeleted
	e.CurrentState = EndpointStateDeleting
	e.UpdatedAt = time.Now()
}

// MarkDeleted finishes the teardown.
func (e *Endpoint) MarkDeleted() {
	e.CurrentState = EndpointStateDeleted
	e.URL = ""
	e.UpdatedAt = time.Now()
}

// IsInService returns true if the endpoint can take traffic.
func (e *Endpoint) IsInService() bool {
	return e.CurrentState == EndpointStateInService
}

// IsLive returns true while the endpoint still holds backend resources.
func (e *Endpoint) IsLive() bool {
	return e.CurrentState != EndpointStateDeleted
}

// SetExternalID sets the backend resource UID
func (e *Endpoint) SetExternalID(externalID string) {
	e.ExternalID = externalID
	e.UpdatedAt = time.Now()
}
