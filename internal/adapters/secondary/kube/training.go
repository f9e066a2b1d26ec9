package kube

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"

	"github.com/aws-samples/build-language-models-on-aws/internal/config"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

var pytorchJobGVR = schema.GroupVersionResource{
	Group:    "kubeflow.org",
	Version:  "v1",
	Resource: "pytorchjobs",
}

type launcherClient struct {
	client    dynamic.Interface
	enabled   bool
	defaultNS string
}

// NewLauncherClient creates the training launcher adapter
func NewLauncherClient(cfg *config.KubernetesConfig) (ports.LauncherClient, error) {
	if !cfg.Enabled {
		return &launcherClient{enabled: false}, nil
	}

	client, err := newDynamicClient(cfg)
	if err != nil {
		return nil, err
	}

	defaultNS := cfg.TrainingNS
	if defaultNS == "" {
		defaultNS = "llm-training"
	}

	return &launcherClient{
		client:    client,
		enabled:   true,
		defaultNS: defaultNS,
	}, nil
}

func (c *launcherClient) IsAvailable() bool {
	return c.enabled
}

func (c *launcherClient) SubmitTrainingJob(ctx context.Context, namespace string, job *domain.TrainingJob) (*ports.TrainingSubmission, error) {
	if namespace == "" {
		namespace = c.defaultNS
	}

	obj := c.buildPyTorchJobCR(job)

	created, err := c.client.Resource(pytorchJobGVR).
		Namespace(namespace).
		Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return nil, fmt.Errorf("create pytorchjob: %w", err)
	}

	return &ports.TrainingSubmission{
		ExternalID: string(created.GetUID()),
	}, nil
}

func (c *launcherClient) StopTrainingJob(ctx context.Context, namespace, name string) error {
	if namespace == "" {
		namespace = c.defaultNS
	}

	err := c.client.Resource(pytorchJobGVR).
		Namespace(namespace).
		Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return fmt.Errorf("delete pytorchjob: %w", err)
	}

	return nil
}

func (c *launcherClient) GetTrainingJobStatus(ctx context.Context, namespace, name string) (*ports.TrainingStatus, error) {
	if namespace == "" {
		namespace = c.defaultNS
	}

	obj, err := c.client.Resource(pytorchJobGVR).
		Namespace(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			// Deleted out from under us, usually by a stop request.
			return &ports.TrainingStatus{
				State:  domain.JobStateStopped,
				Reason: "training resource no longer exists",
			}, nil
		}
		return nil, fmt.Errorf("get pytorchjob: %w", err)
	}

	return c.parseStatus(obj), nil
}

// buildPyTorchJobCR renders the distributed training resource. The instance
// topology maps onto Master/Worker replica specs; torchrun flags come from
// the nnodes/nproc_per_node hyperparameters the service pinned at creation,
// the rest of the hyperparameters become training-script flags.
func (c *launcherClient) buildPyTorchJobCR(job *domain.TrainingJob) *unstructured.Unstructured {
	nproc := job.Hyperparameters["nproc_per_node"]
	if nproc == "" {
		nproc = "1"
	}
	gpus, _ := strconv.Atoi(nproc)
	if gpus < 1 {
		gpus = 1
	}

	container := map[string]interface{}{
		"name":  "pytorch",
		"image": job.ContainerImage,
		"args":  buildTrainingArgs(job, nproc),
		"env": []interface{}{
			map[string]interface{}{"name": "TRAINING_INPUT_URI", "value": job.InputDataURI},
			map[string]interface{}{"name": "TRAINING_OUTPUT_URI", "value": job.OutputURI},
		},
		"resources": map[string]interface{}{
			"limits": map[string]interface{}{
				"nvidia.com/gpu": int64(gpus),
			},
		},
	}

	podTemplate := map[string]interface{}{
		"spec": map[string]interface{}{
			"containers":    []interface{}{container},
			"nodeSelector":  map[string]interface{}{"llm-platform/instance-type": job.InstanceType},
			"restartPolicy": "OnFailure",
		},
	}

	replicaSpecs := map[string]interface{}{
		"Master": map[string]interface{}{
			"replicas":      int64(1),
			"restartPolicy": "OnFailure",
			"template":      podTemplate,
		},
	}
	if job.InstanceCount > 1 {
		replicaSpecs["Worker"] = map[string]interface{}{
			"replicas":      int64(job.InstanceCount - 1),
			"restartPolicy": "OnFailure",
			"template":      podTemplate,
		}
	}

	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "kubeflow.org/v1",
			"kind":       "PyTorchJob",
			"metadata": map[string]interface{}{
				"name": job.Name,
				"labels": map[string]interface{}{
					"llm-platform/training-job-id": job.ID.String(),
					"llm-platform/base-model":      job.BaseModelID,
				},
			},
			"spec": map[string]interface{}{
				"runPolicy": map[string]interface{}{
					"cleanPodPolicy": "Running",
				},
				"pytorchReplicaSpecs": replicaSpecs,
			},
		},
	}
}

// buildTrainingArgs turns the hyperparameter map into torchrun + script
// flags. Keys are sorted so the rendered resource is stable across syncs.
func buildTrainingArgs(job *domain.TrainingJob, nproc string) []interface{} {
	args := []interface{}{
		"--nnodes", strconv.Itoa(job.InstanceCount),
		"--nproc_per_node", nproc,
	}

	keys := make([]string, 0, len(job.Hyperparameters))
	for k := range job.Hyperparameters {
		if k == "nnodes" || k == "nproc_per_node" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		args = append(args, "--"+k, job.Hyperparameters[k])
	}
	return args
}

func (c *launcherClient) parseStatus(obj *unstructured.Unstructured) *ports.TrainingStatus {
	status := &ports.TrainingStatus{State: domain.JobStatePending}

	conditions, found, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if !found {
		return status
	}

	for _, cond := range conditions {
		condMap, ok := cond.(map[string]interface{})
		if !ok {
			continue
		}
		condType, _ := condMap["type"].(string)
		condStatus, _ := condMap["status"].(string)
		if condStatus != "True" {
			continue
		}

		switch condType {
		case "Running":
			status.State = domain.JobStateInProgress
		case "Succeeded":
			status.State = domain.JobStateCompleted
		case "Failed":
			status.State = domain.JobStateFailed
			if msg, ok := condMap["message"].(string); ok {
				status.Reason = msg
			}
		}
	}

	return status
}

// Ensure interface compliance
var _ ports.LauncherClient = (*launcherClient)(nil)
