package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

func TestGet(t *testing.T) {
	spec, err := Get("llama-3-8b-instruct")
	assert.NoError(t, err)
	assert.Equal(t, "meta-llama/Meta-Llama-3-8B-Instruct", spec.SourceID)
	assert.True(t, spec.Trainable)

	_, err = Get("gpt-5")
	assert.ErrorIs(t, err, domain.ErrBaseModelNotFound)
}

func TestList(t *testing.T) {
	all := List("")
	assert.GreaterOrEqual(t, len(all), 3)

	// Sorted by id
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	llamas := List("llama")
	for _, spec := range llamas {
		assert.Equal(t, "llama", spec.Family)
	}
	assert.Less(t, len(llamas), len(all))
}

func TestDefaultServingProperties_AllPresetsValid(t *testing.T) {
	for _, spec := range List("") {
		props := spec.DefaultServingProperties()
		assert.NoError(t, props.Validate(), "preset %s", spec.ID)
		assert.Equal(t, spec.SourceID, props.ModelID)
	}
}

func TestMixtralPreset(t *testing.T) {
	spec, err := Get("mixtral-8x7b-instruct")
	assert.NoError(t, err)
	assert.True(t, spec.MixtureOfExperts)
	assert.Equal(t, 8, spec.TensorParallelDegree)
	assert.Equal(t, 8, spec.ExpertParallelDegree)
	assert.Equal(t, 8, spec.GPUCount)
	assert.Equal(t, domain.EngineMPI, spec.Engine)
	assert.False(t, spec.Trainable)

	// Expert parallelism reaches the container as an option line.
	props := spec.DefaultServingProperties()
	assert.Contains(t, props.Render(), "option.expert_parallel_degree=8")
}

func TestDefaultServingProperties_Quantize(t *testing.T) {
	spec := *Llama38BInstruct
	spec.Quantize = "awq"

	props := spec.DefaultServingProperties()
	assert.Equal(t, "awq", props.Quantize)
	assert.Contains(t, props.Render(), "option.quantize=awq")
}

func TestPresetGPUCounts(t *testing.T) {
	for _, spec := range List("") {
		assert.GreaterOrEqual(t, spec.GPUCount, 1, "preset %s", spec.ID)
		assert.GreaterOrEqual(t, spec.GPUCount, spec.TensorParallelDegree, "preset %s", spec.ID)
	}
}

func TestImageURI(t *testing.T) {
	uri, err := ImageURI(FrameworkDJLDeepSpeed, "0.27.0", DeviceGPU)
	assert.NoError(t, err)
	assert.Equal(t, "deepjavalibrary/djl-serving:0.27.0-deepspeed", uri)

	uri, err = ImageURI(FrameworkTransformers, "4.36.0", DeviceCPU)
	assert.NoError(t, err)
	assert.Equal(t, "huggingface/transformers-pytorch-cpu:4.36.0", uri)

	_, err = ImageURI(FrameworkDJLDeepSpeed, "0.27.0", DeviceCPU)
	assert.Error(t, err)

	_, err = ImageURI("tensorrt-llm", "0.9.0", DeviceGPU)
	assert.Error(t, err)
}

func TestGPUsPerInstance(t *testing.T) {
	assert.Equal(t, 4, GPUsPerInstance("ml.g5.12xlarge"))
	assert.Equal(t, 8, GPUsPerInstance("ml.p4d.24xlarge"))
	assert.Equal(t, 1, GPUsPerInstance("ml.c5.xlarge"))
}
