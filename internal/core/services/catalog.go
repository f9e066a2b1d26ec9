package services

import (
	"github.com/aws-samples/build-language-models-on-aws/internal/catalog"
)

// CatalogService exposes the built-in base model presets.
type CatalogService struct{}

func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

func (s *CatalogService) List(family string) []*catalog.ModelSpec {
	return catalog.List(family)
}

func (s *CatalogService) Get(id string) (*catalog.ModelSpec, error) {
	return catalog.Get(id)
}
