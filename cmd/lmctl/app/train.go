package app

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aws-samples/build-language-models-on-aws/cmd/lmctl/client"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// NewTrainCommand creates the "train" command group for managed
// training jobs.
func NewTrainCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "train",
		Aliases: []string{"training"},
		Short:   "Launch and manage training jobs",
	}

	cmd.AddCommand(
		newTrainCreateCommand(globalOpts),
		newTrainListCommand(globalOpts),
		newTrainShowCommand(globalOpts),
		newTrainStopCommand(globalOpts),
		newTrainDeleteCommand(globalOpts),
	)

	return cmd
}

func newTrainCreateCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		baseModelID     string
		hyperparameters []string
		instanceType    string
		instanceCount   int
		inputDataURI    string
		outputURI       string
		containerImage  string
		wait            bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a training job for a base model",
		Long: `Create a managed training job. Hyperparameters start from the base
model's catalog defaults; --set overrides individual values. Distribution
parameters are derived from the instance topology and cannot be overridden.`,
		Example: `  # Fine-tune TinyLlama on a single GPU node
  lmctl train create tl-ft-1 --base-model tinyllama-1.1b-chat \
    --instance-type ml.g5.xlarge --instance-count 1 \
    --input s3://my-bucket/datasets/alpaca --output s3://my-bucket/outputs/tl-ft-1

  # Override the learning rate and wait for completion
  lmctl train create tl-ft-2 --base-model tinyllama-1.1b-chat \
    --instance-type ml.g5.12xlarge --instance-count 2 \
    --set learning_rate=1e-5 --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			resp, err := c.CreateTrainingJob(&dto.CreateTrainingJobRequest{
				Name:            args[0],
				BaseModelID:     baseModelID,
				Hyperparameters: parseKeyValues(hyperparameters),
				InstanceType:    instanceType,
				InstanceCount:   instanceCount,
				InputDataURI:    inputDataURI,
				OutputURI:       outputURI,
				ContainerImage:  containerImage,
			})
			if err != nil {
				return fmt.Errorf("failed to create training job: %w", err)
			}

			fmt.Printf("Training job %s created: %s\n", resp.Job.Name, resp.Status)
			fmt.Printf("ID: %s\n", resp.Job.ID)
			if resp.Message != "" {
				fmt.Println(resp.Message)
			}

			if wait {
				return waitForTrainingJob(c, resp.Job.ID.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseModelID, "base-model", "", "base model ID from the catalog (required)")
	cmd.Flags().StringArrayVar(&hyperparameters, "set", nil, "hyperparameter override as key=value (repeatable)")
	cmd.Flags().StringVar(&instanceType, "instance-type", "", "instance type, e.g. ml.g5.12xlarge (required)")
	cmd.Flags().IntVar(&instanceCount, "instance-count", 1, "number of instances")
	cmd.Flags().StringVar(&inputDataURI, "input", "", "training data URI")
	cmd.Flags().StringVar(&outputURI, "output", "", "output artifact URI")
	cmd.Flags().StringVar(&containerImage, "image", "", "training container image (default: catalog image)")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the job reaches a terminal state")
	cmd.MarkFlagRequired("base-model")
	cmd.MarkFlagRequired("instance-type")

	return cmd
}

// waitForTrainingJob polls the job through sync until it reaches a
// terminal state.
func waitForTrainingJob(c *client.Client, id string) error {
	fmt.Printf("Waiting for training job %s", id)

	for {
		time.Sleep(10 * time.Second)

		job, err := c.SyncTrainingJob(id)
		if err != nil {
			fmt.Println()
			return fmt.Errorf("failed to sync training job: %w", err)
		}

		switch job.State {
		case "COMPLETED":
			fmt.Printf("\nTraining job completed. Output: %s\n", job.OutputURI)
			return nil
		case "FAILED":
			fmt.Println()
			return fmt.Errorf("training job failed: %s", job.FailureReason)
		case "STOPPED":
			fmt.Println("\nTraining job stopped.")
			return nil
		default:
			fmt.Print(".")
		}
	}
}

func newTrainListCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		state       string
		baseModelID string
		limit       int
		offset      int
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List training jobs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			resp, err := c.ListTrainingJobs(state, baseModelID, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list training jobs: %w", err)
			}

			if len(resp.Items) == 0 {
				fmt.Println("No training jobs found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBASE MODEL\tSTATE\tINSTANCES\tCREATED")
			for _, j := range resp.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx %s\t%s\n",
					j.ID, j.Name, j.BaseModelID, j.State,
					j.InstanceCount, j.InstanceType,
					j.CreatedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by job state")
	cmd.Flags().StringVar(&baseModelID, "base-model", "", "filter by base model ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")

	return cmd
}

func newTrainShowCommand(globalOpts *GlobalOptions) *cobra.Command {
	var sync bool

	cmd := &cobra.Command{
		Use:   "show JOB_ID_OR_NAME",
		Short: "Show details of a training job by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			var (
				job *dto.TrainingJobResponse
				err error
			)
			if sync {
				job, err = c.SyncTrainingJob(args[0])
			} else {
				job, err = c.GetTrainingJob(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to get training job: %w", err)
			}

			fmt.Printf("ID:         %s\n", job.ID)
			fmt.Printf("Name:       %s\n", job.Name)
			fmt.Printf("Base model: %s\n", job.BaseModelID)
			fmt.Printf("State:      %s\n", job.State)
			fmt.Printf("Instances:  %dx %s\n", job.InstanceCount, job.InstanceType)
			fmt.Printf("Image:      %s\n", job.ContainerImage)
			if job.InputDataURI != "" {
				fmt.Printf("Input:      %s\n", job.InputDataURI)
			}
			if job.OutputURI != "" {
				fmt.Printf("Output:     %s\n", job.OutputURI)
			}
			if job.FailureReason != "" {
				fmt.Printf("Failure:    %s\n", job.FailureReason)
			}
			if len(job.Hyperparameters) > 0 {
				fmt.Println("Hyperparameters:")
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for k, v := range job.Hyperparameters {
					fmt.Fprintf(w, "  %s\t%s\n", k, v)
				}
				w.Flush()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "refresh state from the launcher before showing")

	return cmd
}

func newTrainStopCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop JOB_ID",
		Short: "Request a graceful stop of a running training job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			job, err := c.StopTrainingJob(args[0])
			if err != nil {
				return fmt.Errorf("failed to stop training job: %w", err)
			}

			fmt.Printf("Training job %s: %s\n", job.Name, job.State)
			return nil
		},
	}
}

func newTrainDeleteCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm JOB_ID",
		Aliases: []string{"delete"},
		Short:   "Delete a terminal training job record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			if err := c.DeleteTrainingJob(args[0]); err != nil {
				return fmt.Errorf("failed to delete training job: %w", err)
			}

			fmt.Printf("Training job %s deleted\n", args[0])
			return nil
		},
	}
}
