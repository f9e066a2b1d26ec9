package catalog

import "github.com/aws-samples/build-language-models-on-aws/internal/core/domain"

// Llama38BInstruct is the instruction-tuned Llama 3 8B. Fine-tuning defaults
// assume FSDP full sharding with transformer-layer auto wrap, which is what
// the stock training script drives.
var Llama38BInstruct = &ModelSpec{
	ID:            "llama-3-8b-instruct",
	SourceID:      "meta-llama/Meta-Llama-3-8B-Instruct",
	DisplayName:   "Llama 3 8B Instruct",
	Family:        "llama",
	Parameters:    8.0,
	ContextLength: 8192,

	Engine:               domain.EngineMPI,
	RollingBatch:         "auto",
	TensorParallelDegree: 4,
	Dtype:                "bf16",
	GPUCount:             4,
	InferenceImage:       mustImage(FrameworkDJLDeepSpeed, "0.27.0", DeviceGPU),

	Trainable:     true,
	TrainingImage: mustImage(FrameworkTransformers, "4.36.0", DeviceGPU),
	DefaultHyperparameters: map[string]string{
		"epoch":                       "1",
		"learning_rate":               "2e-4",
		"per_device_train_batch_size": "1",
		"gradient_checkpointing":      "true",
		"bf16":                        "true",
		"fsdp":                        "full_shard auto_wrap",
		"fsdp_transformer_layer_cls_to_wrap": "LlamaDecoderLayer",
	},
}

func init() {
	Register(Llama38BInstruct)
}
