// Package catalog holds the built-in base model presets. Each preset records
// how a model family is served (engine, sharding degree, container image) and,
// when supported, how it is fine-tuned.
package catalog

import (
	"sort"
	"strconv"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

// ModelSpec describes a base model the platform knows how to serve.
type ModelSpec struct {
	ID            string  // catalog identifier, e.g. "llama-3-8b-instruct"
	SourceID      string  // hub path, e.g. "meta-llama/Meta-Llama-3-8B-Instruct"
	DisplayName   string
	Family        string
	Parameters    float64 // billions
	ContextLength int

	// Serving defaults
	Engine               domain.ServingEngine
	RollingBatch         string
	TensorParallelDegree int
	ExpertParallelDegree int // MoE models only
	Dtype                string
	Quantize             string // empty serves full precision
	MixtureOfExperts     bool
	GPUCount             int // GPUs one serving replica needs
	InferenceImage       string

	// Fine-tuning support
	Trainable              bool
	TrainingImage          string
	DefaultHyperparameters map[string]string
}

// DefaultServingProperties builds the serving configuration this preset ships
// with. Callers override individual keys before packaging.
func (m *ModelSpec) DefaultServingProperties() *domain.ServingProperties {
	p := &domain.ServingProperties{
		Engine:               m.Engine,
		ModelID:              m.SourceID,
		TensorParallelDegree: m.TensorParallelDegree,
		RollingBatch:         m.RollingBatch,
		MaxRollingBatchSize:  defaultMaxRollingBatchSize,
		Dtype:                m.Dtype,
		Quantize:             m.Quantize,
	}
	if m.ExpertParallelDegree > 0 {
		p.Set("option.expert_parallel_degree", strconv.Itoa(m.ExpertParallelDegree))
	}
	return p
}

const defaultMaxRollingBatchSize = 32

var registry = make(map[string]*ModelSpec)

// Register adds a preset to the catalog. Called from init in the preset
// files; duplicate IDs are a programming error.
func Register(spec *ModelSpec) {
	if _, exists := registry[spec.ID]; exists {
		panic("catalog: duplicate model spec id: " + spec.ID)
	}
	registry[spec.ID] = spec
}

// Get looks up a preset by catalog id.
func Get(id string) (*ModelSpec, error) {
	spec, ok := registry[id]
	if !ok {
		return nil, domain.ErrBaseModelNotFound
	}
	return spec, nil
}

// List returns all presets sorted by id, optionally filtered by family.
func List(family string) []*ModelSpec {
	specs := make([]*ModelSpec, 0, len(registry))
	for _, spec := range registry {
		if family != "" && spec.Family != family {
			continue
		}
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
