package kube

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

func TestBuildInferenceServiceCR(t *testing.T) {
	c := &servingClient{}

	ep, _ := domain.NewEndpoint(uuid.New(), "prod-llama", uuid.New(), "ml.g5.48xlarge", 2)
	pkg := &domain.ModelPackage{
		ID:         ep.ModelPackageID,
		Name:       "my-llama",
		StorageURI: "s3://model-packages/packages/p/my-llama/model.tar.gz",
		Properties: &domain.ServingProperties{
			Engine:               domain.EngineMPI,
			ModelID:              "meta-llama/Meta-Llama-3-8B-Instruct",
			TensorParallelDegree: 4,
			MaxRollingBatchSize:  32,
		},
	}

	obj := c.buildInferenceServiceCR(ep, pkg, "deepjavalibrary/djl-serving:0.27.0-deepspeed")

	assert.Equal(t, "serving.kserve.io/v1beta1", obj.GetAPIVersion())
	assert.Equal(t, "InferenceService", obj.GetKind())
	assert.Equal(t, "prod-llama", obj.GetName())
	assert.Equal(t, ep.ID.String(), obj.GetLabels()["llm-platform/endpoint-id"])

	storageURI, _, _ := unstructured.NestedString(obj.Object, "spec", "predictor", "model", "storageUri")
	assert.Equal(t, pkg.StorageURI, storageURI)

	minReplicas, _, _ := unstructured.NestedInt64(obj.Object, "spec", "predictor", "minReplicas")
	assert.Equal(t, int64(2), minReplicas)

	env, found, _ := unstructured.NestedSlice(obj.Object, "spec", "predictor", "model", "env")
	assert.True(t, found)
	vars := map[string]string{}
	for _, e := range env {
		m := e.(map[string]interface{})
		vars[m["name"].(string)] = m["value"].(string)
	}
	assert.Equal(t, "MPI", vars["SERVING_ENGINE"])
	assert.Equal(t, "4", vars["TENSOR_PARALLEL_DEGREE"])
	assert.Equal(t, "32", vars["MAX_ROLLING_BATCH_SIZE"])
}

func TestServingParseStatus(t *testing.T) {
	c := &servingClient{}

	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"status": map[string]interface{}{
			"url": "http://prod-llama.llm-serving.svc",
			"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True"},
			},
		},
	}}
	status := c.parseStatus(obj)
	assert.True(t, status.Ready)
	assert.Equal(t, "http://prod-llama.llm-serving.svc", status.URL)

	obj = &unstructured.Unstructured{Object: map[string]interface{}{
		"status": map[string]interface{}{
			"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "False", "message": "revision failed to become ready"},
			},
		},
	}}
	status = c.parseStatus(obj)
	assert.False(t, status.Ready)
	assert.Equal(t, "revision failed to become ready", status.Error)

	// Status not reported yet
	status = c.parseStatus(&unstructured.Unstructured{Object: map[string]interface{}{}})
	assert.False(t, status.Ready)
	assert.Empty(t, status.URL)
}
