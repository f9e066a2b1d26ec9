package dto

import (
	"github.com/aws-samples/build-language-models-on-aws/internal/catalog"
)

// ============================================================================
// Catalog DTOs
// ============================================================================

type BaseModelResponse struct {
	ID                   string  `json:"id"`
	SourceID             string  `json:"source_id"`
	DisplayName          string  `json:"display_name"`
	Family               string  `json:"family"`
	Parameters           float64 `json:"parameters_billions"`
	ContextLength        int     `json:"context_length"`
	Engine               string  `json:"engine"`
	TensorParallelDegree int     `json:"tensor_parallel_degree"`
	ExpertParallelDegree int     `json:"expert_parallel_degree,omitempty"`
	Quantize             string  `json:"quantize,omitempty"`
	MixtureOfExperts     bool    `json:"mixture_of_experts"`
	GPUCount             int     `json:"gpu_count"`
	Trainable            bool    `json:"trainable"`
}

type ListBaseModelsResponse struct {
	Items []BaseModelResponse `json:"items"`
	Total int                 `json:"total"`
}

func ToBaseModelResponse(spec *catalog.ModelSpec) BaseModelResponse {
	return BaseModelResponse{
		ID:                   spec.ID,
		SourceID:             spec.SourceID,
		DisplayName:          spec.DisplayName,
		Family:               spec.Family,
		Parameters:           spec.Parameters,
		ContextLength:        spec.ContextLength,
		Engine:               string(spec.Engine),
		TensorParallelDegree: spec.TensorParallelDegree,
		ExpertParallelDegree: spec.ExpertParallelDegree,
		Quantize:             spec.Quantize,
		MixtureOfExperts:     spec.MixtureOfExperts,
		GPUCount:             spec.GPUCount,
		Trainable:            spec.Trainable,
	}
}
