package kube

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
)

func trainingJob(instanceCount int) *domain.TrainingJob {
	job, _ := domain.NewTrainingJob(uuid.New(), "tl-ft-1", "tinyllama-1.1b-chat", "ml.g5.12xlarge", instanceCount)
	job.ContainerImage = "huggingface/transformers-pytorch-gpu:4.36.0"
	job.InputDataURI = "s3://bucket/datasets/alpaca"
	job.OutputURI = "s3://bucket/outputs/tl-ft-1"
	job.Hyperparameters = map[string]string{
		"learning_rate":  "2e-5",
		"epoch":          "3",
		"nnodes":         "2",
		"nproc_per_node": "4",
	}
	return job
}

func TestBuildPyTorchJobCR(t *testing.T) {
	c := &launcherClient{}
	job := trainingJob(2)

	obj := c.buildPyTorchJobCR(job)

	assert.Equal(t, "kubeflow.org/v1", obj.GetAPIVersion())
	assert.Equal(t, "PyTorchJob", obj.GetKind())
	assert.Equal(t, "tl-ft-1", obj.GetName())
	assert.Equal(t, job.ID.String(), obj.GetLabels()["llm-platform/training-job-id"])

	// Two instances map onto one master plus one worker
	masterReplicas, found, _ := unstructured.NestedInt64(obj.Object, "spec", "pytorchReplicaSpecs", "Master", "replicas")
	assert.True(t, found)
	assert.Equal(t, int64(1), masterReplicas)

	workerReplicas, found, _ := unstructured.NestedInt64(obj.Object, "spec", "pytorchReplicaSpecs", "Worker", "replicas")
	assert.True(t, found)
	assert.Equal(t, int64(1), workerReplicas)

	selector, found, _ := unstructured.NestedStringMap(obj.Object, "spec", "pytorchReplicaSpecs", "Master", "template", "spec", "nodeSelector")
	assert.True(t, found)
	assert.Equal(t, "ml.g5.12xlarge", selector["llm-platform/instance-type"])
}

func TestBuildPyTorchJobCR_SingleNode(t *testing.T) {
	c := &launcherClient{}
	obj := c.buildPyTorchJobCR(trainingJob(1))

	_, found, _ := unstructured.NestedMap(obj.Object, "spec", "pytorchReplicaSpecs", "Worker")
	assert.False(t, found)
}

func TestBuildTrainingArgs(t *testing.T) {
	job := trainingJob(2)

	args := buildTrainingArgs(job, "4")

	// Distribution flags lead, script flags follow sorted by key
	assert.Equal(t, []interface{}{
		"--nnodes", "2",
		"--nproc_per_node", "4",
		"--epoch", "3",
		"--learning_rate", "2e-5",
	}, args)
}

func TestLauncherParseStatus(t *testing.T) {
	c := &launcherClient{}

	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"status": map[string]interface{}{
			"conditions": []interface{}{
				map[string]interface{}{"type": "Created", "status": "True"},
				map[string]interface{}{"type": "Running", "status": "True"},
			},
		},
	}}
	assert.Equal(t, domain.JobStateInProgress, c.parseStatus(obj).State)

	obj = &unstructured.Unstructured{Object: map[string]interface{}{
		"status": map[string]interface{}{
			"conditions": []interface{}{
				map[string]interface{}{"type": "Failed", "status": "True", "message": "worker OOMKilled"},
			},
		},
	}}
	status := c.parseStatus(obj)
	assert.Equal(t, domain.JobStateFailed, status.State)
	assert.Equal(t, "worker OOMKilled", status.Reason)

	// No conditions yet
	obj = &unstructured.Unstructured{Object: map[string]interface{}{}}
	assert.Equal(t, domain.JobStatePending, c.parseStatus(obj).State)
}
