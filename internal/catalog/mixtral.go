package catalog

import "github.com/aws-samples/build-language-models-on-aws/internal/core/domain"

// Mixtral8x7BInstruct is the instruction-tuned Mixtral mixture-of-experts
// model. Expert routing happens inside the serving engine; from the
// platform's side the only knob is the tensor parallel degree, which must
// cover all eight experts' shards on a single node.
var Mixtral8x7BInstruct = &ModelSpec{
	ID:            "mixtral-8x7b-instruct",
	SourceID:      "mistralai/Mixtral-8x7B-Instruct-v0.1",
	DisplayName:   "Mixtral 8x7B Instruct",
	Family:        "mixtral",
	Parameters:    46.7,
	ContextLength: 32768,

	Engine:               domain.EngineMPI,
	RollingBatch:         "auto",
	TensorParallelDegree: 8,
	ExpertParallelDegree: 8,
	Dtype:                "fp16",
	MixtureOfExperts:     true,
	GPUCount:             8,
	InferenceImage:       mustImage(FrameworkDJLDeepSpeed, "0.27.0", DeviceGPU),

	Trainable: false,
}

func init() {
	Register(Mixtral8x7BInstruct)
}
