package catalog

import "github.com/aws-samples/build-language-models-on-aws/internal/core/domain"

// TinyLlama11BChat fits on a single GPU, which makes it the cheapest way to
// exercise the full package/deploy/invoke path end to end.
var TinyLlama11BChat = &ModelSpec{
	ID:            "tinyllama-1.1b-chat",
	SourceID:      "TinyLlama/TinyLlama-1.1B-Chat-v1.0",
	DisplayName:   "TinyLlama 1.1B Chat",
	Family:        "tinyllama",
	Parameters:    1.1,
	ContextLength: 2048,

	Engine:               domain.EnginePython,
	RollingBatch:         "vllm",
	TensorParallelDegree: 1,
	Dtype:                "fp16",
	GPUCount:             1,
	InferenceImage:       mustImage(FrameworkDJLDeepSpeed, "0.27.0", DeviceGPU),

	Trainable:     true,
	TrainingImage: mustImage(FrameworkTransformers, "4.36.0", DeviceGPU),
	DefaultHyperparameters: map[string]string{
		"epoch":                       "3",
		"learning_rate":               "2e-5",
		"per_device_train_batch_size": "8",
		"gradient_checkpointing":      "false",
		"bf16":                        "true",
	},
}

func init() {
	Register(TinyLlama11BChat)
}
