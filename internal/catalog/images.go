package catalog

import "fmt"

// Device classes an image can target.
const (
	DeviceGPU = "gpu"
	DeviceCPU = "cpu"
)

// Serving frameworks with pinned image builds.
const (
	FrameworkDJLDeepSpeed = "djl-deepspeed"
	FrameworkTransformers = "transformers-pytorch"
)

type imageKey struct {
	framework string
	version   string
	device    string
}

// Pinned container images per (framework, version, device). Presets resolve
// their defaults from here so an image upgrade is a single-line change.
var imageTable = map[imageKey]string{
	{FrameworkDJLDeepSpeed, "0.27.0", DeviceGPU}: "deepjavalibrary/djl-serving:0.27.0-deepspeed",
	{FrameworkDJLDeepSpeed, "0.26.0", DeviceGPU}: "deepjavalibrary/djl-serving:0.26.0-deepspeed",
	{FrameworkTransformers, "4.36.0", DeviceGPU}: "huggingface/transformers-pytorch-gpu:4.36.0",
	{FrameworkTransformers, "4.36.0", DeviceCPU}: "huggingface/transformers-pytorch-cpu:4.36.0",
}

// ImageURI resolves the container image for a framework, version, and device
// combination.
func ImageURI(framework, version, device string) (string, error) {
	uri, ok := imageTable[imageKey{framework, version, device}]
	if !ok {
		return "", fmt.Errorf("no image for framework %q version %q on %q", framework, version, device)
	}
	return uri, nil
}

// mustImage is for preset definitions, where a missing table entry is a
// programming error.
func mustImage(framework, version, device string) string {
	uri, err := ImageURI(framework, version, device)
	if err != nil {
		panic("catalog: " + err.Error())
	}
	return uri
}
