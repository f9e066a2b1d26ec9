package kube

import (
	"context"
	"fmt"
	"strconv"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"

	"github.com/aws-samples/build-language-models-on-aws/internal/config"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

var inferenceServiceGVR = schema.GroupVersionResource{
	Group:    "serving.kserve.io",
	Version:  "v1beta1",
	Resource: "inferenceservices",
}

type servingClient struct {
	client    dynamic.Interface
	enabled   bool
	defaultNS string
}

// NewServingClient creates the inference serving adapter
func NewServingClient(cfg *config.KubernetesConfig) (ports.ServingClient, error) {
	if !cfg.Enabled {
		return &servingClient{enabled: false}, nil
	}

	client, err := newDynamicClient(cfg)
	if err != nil {
		return nil, err
	}

	defaultNS := cfg.ServingNS
	if defaultNS == "" {
		defaultNS = "llm-serving"
	}

	return &servingClient{
		client:    client,
		enabled:   true,
		defaultNS: defaultNS,
	}, nil
}

func (c *servingClient) IsAvailable() bool {
	return c.enabled
}

func (c *servingClient) Deploy(
	ctx context.Context,
	namespace string,
	ep *domain.Endpoint,
	pkg *domain.ModelPackage,
	image string,
) (*ports.ServingDeployment, error) {
	if namespace == "" {
		namespace = c.defaultNS
	}

	obj := c.buildInferenceServiceCR(ep, pkg, image)

	created, err := c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return nil, fmt.Errorf("create inferenceservice: %w", err)
	}

	return &ports.ServingDeployment{
		ExternalID: string(created.GetUID()),
	}, nil
}

func (c *servingClient) Undeploy(ctx context.Context, namespace, name string) error {
	if namespace == "" {
		namespace = c.defaultNS
	}

	err := c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return fmt.Errorf("delete inferenceservice: %w", err)
	}

	return nil
}

func (c *servingClient) GetStatus(ctx context.Context, namespace, name string) (*ports.ServingStatus, error) {
	if namespace == "" {
		namespace = c.defaultNS
	}

	obj, err := c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get inferenceservice: %w", err)
	}

	return c.parseStatus(obj), nil
}

// buildInferenceServiceCR renders the serving resource. The container reads
// serving.properties from the package archive at storageUri; parallelism and
// batch settings also go out as env so the pod spec documents them.
func (c *servingClient) buildInferenceServiceCR(
	ep *domain.Endpoint,
	pkg *domain.ModelPackage,
	image string,
) *unstructured.Unstructured {
	labels := map[string]interface{}{
		"llm-platform/endpoint-id":      ep.ID.String(),
		"llm-platform/model-package-id": ep.ModelPackageID.String(),
	}
	for k, v := range ep.Labels {
		labels[k] = v
	}

	props := pkg.Properties
	predictor := map[string]interface{}{
		"minReplicas": int64(ep.InstanceCount),
		"maxReplicas": int64(ep.InstanceCount),
		"model": map[string]interface{}{
			"storageUri": pkg.StorageURI,
			"runtime":    image,
			"env": []interface{}{
				map[string]interface{}{"name": "SERVING_ENGINE", "value": string(props.Engine)},
				map[string]interface{}{"name": "TENSOR_PARALLEL_DEGREE", "value": strconv.Itoa(props.TensorParallelDegree)},
				map[string]interface{}{"name": "MAX_ROLLING_BATCH_SIZE", "value": strconv.Itoa(props.MaxRollingBatchSize)},
			},
		},
	}

	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "serving.kserve.io/v1beta1",
			"kind":       "InferenceService",
			"metadata": map[string]interface{}{
				"name":   ep.Name,
				"labels": labels,
			},
			"spec": map[string]interface{}{
				"predictor": predictor,
			},
		},
	}
}

func (c *servingClient) parseStatus(obj *unstructured.Unstructured) *ports.ServingStatus {
	status := &ports.ServingStatus{}

	statusMap, found, _ := unstructured.NestedMap(obj.Object, "status")
	if !found {
		return status
	}

	status.URL, _, _ = unstructured.NestedString(statusMap, "url")

	conditions, found, _ := unstructured.NestedSlice(statusMap, "conditions")
	if found {
		for _, cond := range conditions {
			condMap, ok := cond.(map[string]interface{})
			if !ok {
				continue
			}
			condType, _ := condMap["type"].(string)
			condStatus, _ := condMap["status"].(string)

			if condType == "Ready" {
				status.Ready = condStatus == "True"
				if condStatus == "False" {
					if msg, ok := condMap["message"].(string); ok {
						status.Error = msg
					}
				}
				break
			}
		}
	}

	return status
}

// Ensure interface compliance
var _ ports.ServingClient = (*servingClient)(nil)
