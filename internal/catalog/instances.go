package catalog

// GPUs per accelerated instance type. The launcher needs this to derive
// torchrun's nproc_per_node from the instance topology the caller picked.
var instanceGPUs = map[string]int{
	"ml.g5.xlarge":    1,
	"ml.g5.2xlarge":   1,
	"ml.g5.4xlarge":   1,
	"ml.g5.12xlarge":  4,
	"ml.g5.24xlarge":  4,
	"ml.g5.48xlarge":  8,
	"ml.g6.12xlarge":  4,
	"ml.g6.48xlarge":  8,
	"ml.p3.2xlarge":   1,
	"ml.p3.8xlarge":   4,
	"ml.p3.16xlarge":  8,
	"ml.p4d.24xlarge": 8,
	"ml.p5.48xlarge":  8,
}

// GPUsPerInstance returns the GPU count for an instance type, defaulting to
// one for anything unlisted.
func GPUsPerInstance(instanceType string) int {
	if n, ok := instanceGPUs[instanceType]; ok {
		return n
	}
	return 1
}
