package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewModelsCommand creates the "models" command group for browsing the
// base model catalog.
func NewModelsCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"model"},
		Short:   "Browse the base model catalog",
	}

	cmd.AddCommand(
		newModelsListCommand(globalOpts),
		newModelsShowCommand(globalOpts),
	)

	return cmd
}

func newModelsListCommand(globalOpts *GlobalOptions) *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List base models",
		Example: `  # List all base models
  lmctl models ls

  # List models in the llama family
  lmctl models ls --family llama`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			resp, err := c.ListBaseModels(family)
			if err != nil {
				return fmt.Errorf("failed to list base models: %w", err)
			}

			if len(resp.Items) == 0 {
				fmt.Println("No base models available.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tFAMILY\tPARAMS\tCONTEXT\tENGINE\tTP\tTRAINABLE")
			for _, m := range resp.Items {
				fmt.Fprintf(w, "%s\t%s\t%.1fB\t%d\t%s\t%d\t%v\n",
					m.ID, m.Family, m.Parameters, m.ContextLength,
					m.Engine, m.TensorParallelDegree, m.Trainable)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "filter by model family")

	return cmd
}

func newModelsShowCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show MODEL_ID",
		Short: "Show details of a base model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			m, err := c.GetBaseModel(args[0])
			if err != nil {
				return fmt.Errorf("failed to get base model: %w", err)
			}

			fmt.Printf("ID:             %s\n", m.ID)
			fmt.Printf("Source:         %s\n", m.SourceID)
			fmt.Printf("Display name:   %s\n", m.DisplayName)
			fmt.Printf("Family:         %s\n", m.Family)
			fmt.Printf("Parameters:     %.1fB\n", m.Parameters)
			fmt.Printf("Context length: %d\n", m.ContextLength)
			fmt.Printf("Engine:         %s\n", m.Engine)
			fmt.Printf("GPUs:           %d\n", m.GPUCount)
			fmt.Printf("Tensor degree:  %d\n", m.TensorParallelDegree)
			if m.MixtureOfExperts {
				fmt.Printf("Expert degree:  %d\n", m.ExpertParallelDegree)
			}
			fmt.Printf("MoE:            %v\n", m.MixtureOfExperts)
			if m.Quantize != "" {
				fmt.Printf("Quantize:       %s\n", m.Quantize)
			}
			fmt.Printf("Trainable:      %v\n", m.Trainable)

			return nil
		},
	}
}
