package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProps() *ServingProperties {
	return &ServingProperties{
		Engine:               EngineMPI,
		ModelID:              "meta-llama/Meta-Llama-3-8B-Instruct",
		TensorParallelDegree: 4,
		RollingBatch:         "auto",
		MaxRollingBatchSize:  32,
		Dtype:                "bf16",
	}
}

func TestServingProperties_Validate(t *testing.T) {
	assert.NoError(t, validProps().Validate())

	p := validProps()
	p.ModelID = ""
	assert.ErrorIs(t, p.Validate(), ErrMissingModelID)

	p = validProps()
	p.Engine = "TensorRT"
	assert.ErrorIs(t, p.Validate(), ErrUnsupportedEngine)

	p = validProps()
	p.TensorParallelDegree = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidParallelDegree)

	p = validProps()
	p.MaxRollingBatchSize = -1
	assert.ErrorIs(t, p.Validate(), ErrInvalidBatchSize)

	// Zero is unset, not invalid; Render drops the key.
	p = validProps()
	p.MaxRollingBatchSize = 0
	assert.NoError(t, p.Validate())
	assert.NotContains(t, p.Render(), "option.max_rolling_batch_size")
}

func TestServingProperties_Render_Order(t *testing.T) {
	p := validProps()
	p.Set("option.trust_remote_code", "true")
	p.Set("option.enable_streaming", "true")

	rendered := p.Render()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")

	assert.Equal(t, []string{
		"engine=MPI",
		"option.model_id=meta-llama/Meta-Llama-3-8B-Instruct",
		"option.tensor_parallel_degree=4",
		"option.rolling_batch=auto",
		"option.max_rolling_batch_size=32",
		"option.dtype=bf16",
		"option.enable_streaming=true",
		"option.trust_remote_code=true",
	}, lines)
}

func TestServingProperties_Render_Deterministic(t *testing.T) {
	p := validProps()
	p.Set("b_key", "2")
	p.Set("a_key", "1")
	p.Set("c_key", "3")

	first := p.Render()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Render())
	}
}

func TestServingProperties_Render_OmitsEmptyOptionals(t *testing.T) {
	p := &ServingProperties{
		Engine:               EnginePython,
		ModelID:              "TinyLlama/TinyLlama-1.1B-Chat-v1.0",
		TensorParallelDegree: 1,
	}

	rendered := p.Render()
	assert.NotContains(t, rendered, "option.rolling_batch")
	assert.NotContains(t, rendered, "option.max_rolling_batch_size")
	assert.NotContains(t, rendered, "option.dtype")
	assert.NotContains(t, rendered, "option.quantize")
}

func TestParseServingProperties_RoundTrip(t *testing.T) {
	p := validProps()
	p.Quantize = "awq"
	p.Set("option.trust_remote_code", "true")

	parsed, err := ParseServingProperties(p.Render())
	assert.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParseServingProperties_SkipsCommentsAndBlanks(t *testing.T) {
	input := `# generated configuration
engine=Python

option.model_id=TinyLlama/TinyLlama-1.1B-Chat-v1.0
option.tensor_parallel_degree=1
`
	parsed, err := ParseServingProperties(input)
	assert.NoError(t, err)
	assert.Equal(t, EnginePython, parsed.Engine)
	assert.Equal(t, "TinyLlama/TinyLlama-1.1B-Chat-v1.0", parsed.ModelID)
	assert.Equal(t, 1, parsed.TensorParallelDegree)
}

func TestParseServingProperties_Malformed(t *testing.T) {
	_, err := ParseServingProperties("engine MPI")
	assert.ErrorIs(t, err, ErrMalformedProperties)

	_, err = ParseServingProperties("=value")
	assert.ErrorIs(t, err, ErrMalformedProperties)
}

func TestServingProperties_ApplyOption(t *testing.T) {
	p := &ServingProperties{}

	assert.NoError(t, p.ApplyOption("engine", "MPI"))
	assert.NoError(t, p.ApplyOption("option.tensor_parallel_degree", "8"))
	assert.NoError(t, p.ApplyOption("option.max_rolling_batch_size", "64"))
	assert.NoError(t, p.ApplyOption("option.custom_flag", "on"))

	assert.Equal(t, EngineMPI, p.Engine)
	assert.Equal(t, 8, p.TensorParallelDegree)
	assert.Equal(t, 64, p.MaxRollingBatchSize)
	assert.Equal(t, "on", p.Extra["option.custom_flag"])

	err := p.ApplyOption("option.tensor_parallel_degree", "four")
	assert.ErrorIs(t, err, ErrMalformedProperties)

	err = p.ApplyOption("option.max_rolling_batch_size", "lots")
	assert.ErrorIs(t, err, ErrMalformedProperties)
}
