package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serving engines understood by the LMI inference container.
type ServingEngine string

const (
	EngineMPI       ServingEngine = "MPI"
	EnginePython    ServingEngine = "Python"
	EngineDeepSpeed ServingEngine = "DeepSpeed"
)

// IsValid checks if the engine is supported
func (e ServingEngine) IsValid() bool {
	return e == EngineMPI || e == EnginePython || e == EngineDeepSpeed
}

// Well-known serving.properties keys. Everything else goes through Extra.
const (
	propEngine               = "engine"
	propModelID              = "option.model_id"
	propTensorParallelDegree = "option.tensor_parallel_degree"
	propRollingBatch         = "option.rolling_batch"
	propMaxRollingBatchSize  = "option.max_rolling_batch_size"
	propDtype                = "option.dtype"
	propQuantize             = "option.quantize"
)

// ServingProperties is the flat key-value configuration file consumed by the
// inference container. It tells the container which model to load and how to
// shard it across devices.
type ServingProperties struct {
	Engine               ServingEngine     `json:"engine"`
	ModelID              string            `json:"model_id"`
	TensorParallelDegree int               `json:"tensor_parallel_degree"`
	RollingBatch         string            `json:"rolling_batch,omitempty"`
	MaxRollingBatchSize  int               `json:"max_rolling_batch_size,omitempty"`
	Dtype                string            `json:"dtype,omitempty"`
	Quantize             string            `json:"quantize,omitempty"`
	Extra                map[string]string `json:"extra,omitempty"`
}

// Validate checks the properties against what the container will accept.
func (p *ServingProperties) Validate() error {
	if p.ModelID == "" {
		return ErrMissingModelID
	}
	if !p.Engine.IsValid() {
		return ErrUnsupportedEngine
	}
	if p.TensorParallelDegree < 1 {
		return ErrInvalidParallelDegree
	}
	// Zero means unset; Render omits the key so the container applies its own
	// default.
	if p.MaxRollingBatchSize < 0 {
		return ErrInvalidBatchSize
	}
	return nil
}

// Set stores a free-form option not covered by a dedicated field.
func (p *ServingProperties) Set(key, value string) {
	if p.Extra == nil {
		p.Extra = make(map[string]string)
	}
	p.Extra[key] = value
}

// Render writes the properties in the line format the container reads.
// Well-known keys come first in a fixed order, extras follow sorted, so the
// output is deterministic for a given configuration.
func (p *ServingProperties) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s=%s\n", propEngine, p.Engine)
	fmt.Fprintf(&b, "%s=%s\n", propModelID, p.ModelID)
	fmt.Fprintf(&b, "%s=%d\n", propTensorParallelDegree, p.TensorParallelDegree)
	if p.RollingBatch != "" {
		fmt.Fprintf(&b, "%s=%s\n", propRollingBatch, p.RollingBatch)
	}
	if p.MaxRollingBatchSize > 0 {
		fmt.Fprintf(&b, "%s=%d\n", propMaxRollingBatchSize, p.MaxRollingBatchSize)
	}
	if p.Dtype != "" {
		fmt.Fprintf(&b, "%s=%s\n", propDtype, p.Dtype)
	}
	if p.Quantize != "" {
		fmt.Fprintf(&b, "%s=%s\n", propQuantize, p.Quantize)
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, p.Extra[k])
	}

	return b.String()
}

// ApplyOption routes a raw key-value pair into the matching field, or Extra
// for keys without a dedicated one. Integer keys reject non-numeric values.
func (p *ServingProperties) ApplyOption(key, value string) error {
	switch key {
	case propEngine:
		p.Engine = ServingEngine(value)
	case propModelID:
		p.ModelID = value
	case propTensorParallelDegree:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%s", ErrMalformedProperties, key, value)
		}
		p.TensorParallelDegree = n
	case propRollingBatch:
		p.RollingBatch = value
	case propMaxRollingBatchSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%s", ErrMalformedProperties, key, value)
		}
		p.MaxRollingBatchSize = n
	case propDtype:
		p.Dtype = value
	case propQuantize:
		p.Quantize = value
	default:
		p.Set(key, value)
	}
	return nil
}

// ParseServingProperties reads the rendered line format back into a struct.
// Blank lines and '#' comments are skipped.
func ParseServingProperties(s string) (*ServingProperties, error) {
	p := &ServingProperties{}

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedProperties, line)
		}
		if err := p.ApplyOption(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}

	return p, nil
}
