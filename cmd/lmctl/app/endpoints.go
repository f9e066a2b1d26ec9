package app

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aws-samples/build-language-models-on-aws/cmd/lmctl/client"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// NewEndpointsCommand creates the "endpoints" command group for
// inference endpoints.
func NewEndpointsCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint", "ep"},
		Short:   "Deploy and manage inference endpoints",
	}

	cmd.AddCommand(
		newEndpointsDeployCommand(globalOpts),
		newEndpointsListCommand(globalOpts),
		newEndpointsShowCommand(globalOpts),
		newEndpointsDeleteCommand(globalOpts),
	)

	return cmd
}

func newEndpointsDeployCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		name          string
		instanceType  string
		instanceCount int
		labels        []string
		wait          bool
	)

	cmd := &cobra.Command{
		Use:   "deploy PACKAGE_ID",
		Short: "Deploy an inference endpoint for a model package",
		Example: `  # Deploy a package on a single GPU node
  lmctl endpoints deploy 6f1f5c0e-... --instance-type ml.g5.12xlarge

  # Deploy with two replicas and wait until in service
  lmctl endpoints deploy 6f1f5c0e-... --instance-type ml.g5.48xlarge \
    --instance-count 2 --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid package ID %q", args[0])
			}

			c := getClient(globalOpts)

			resp, err := c.DeployEndpoint(&dto.DeployEndpointRequest{
				Name:           name,
				ModelPackageID: pkgID,
				InstanceType:   instanceType,
				InstanceCount:  instanceCount,
				Labels:         parseKeyValues(labels),
			})
			if err != nil {
				return fmt.Errorf("failed to deploy endpoint: %w", err)
			}

			fmt.Printf("Endpoint %s: %s\n", resp.Endpoint.Name, resp.Status)
			fmt.Printf("ID: %s\n", resp.Endpoint.ID)
			if resp.Message != "" {
				fmt.Println(resp.Message)
			}

			if wait {
				return waitForEndpoint(c, resp.Endpoint.ID.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "endpoint name (default: derived from the package)")
	cmd.Flags().StringVar(&instanceType, "instance-type", "", "instance type, e.g. ml.g5.12xlarge (required)")
	cmd.Flags().IntVar(&instanceCount, "instance-count", 1, "number of instances")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "label as key=value (repeatable)")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the endpoint is in service")
	cmd.MarkFlagRequired("instance-type")

	return cmd
}

// waitForEndpoint polls the endpoint through sync until it is in
// service or fails.
func waitForEndpoint(c *client.Client, id string) error {
	fmt.Printf("Waiting for endpoint %s", id)

	for {
		time.Sleep(10 * time.Second)

		ep, err := c.SyncEndpoint(id)
		if err != nil {
			fmt.Println()
			return fmt.Errorf("failed to sync endpoint: %w", err)
		}

		switch ep.CurrentState {
		case "IN_SERVICE":
			fmt.Printf("\nEndpoint in service: %s\n", ep.URL)
			return nil
		case "FAILED":
			fmt.Println()
			return fmt.Errorf("endpoint failed: %s", ep.LastError)
		default:
			fmt.Print(".")
		}
	}
}

func newEndpointsListCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		state  string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List inference endpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			resp, err := c.ListEndpoints(state, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list endpoints: %w", err)
			}

			if len(resp.Items) == 0 {
				fmt.Println("No endpoints found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPACKAGE\tSTATE\tINSTANCES\tURL")
			for _, ep := range resp.Items {
				url := ep.URL
				if url == "" {
					url = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx %s\t%s\n",
					ep.ID, ep.Name, ep.ModelPackageName, ep.CurrentState,
					ep.InstanceCount, ep.InstanceType, url)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by current state")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")

	return cmd
}

func newEndpointsShowCommand(globalOpts *GlobalOptions) *cobra.Command {
	var sync bool

	cmd := &cobra.Command{
		Use:   "show ENDPOINT_ID_OR_NAME",
		Short: "Show details of an endpoint by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			var (
				ep  *dto.EndpointResponse
				err error
			)
			if sync {
				ep, err = c.SyncEndpoint(args[0])
			} else {
				ep, err = c.GetEndpoint(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to get endpoint: %w", err)
			}

			fmt.Printf("ID:        %s\n", ep.ID)
			fmt.Printf("Name:      %s\n", ep.Name)
			fmt.Printf("Package:   %s (%s)\n", ep.ModelPackageName, ep.ModelPackageID)
			fmt.Printf("Desired:   %s\n", ep.DesiredState)
			fmt.Printf("Current:   %s\n", ep.CurrentState)
			fmt.Printf("Instances: %dx %s\n", ep.InstanceCount, ep.InstanceType)
			if ep.URL != "" {
				fmt.Printf("URL:       %s\n", ep.URL)
			}
			if ep.LastError != "" {
				fmt.Printf("Error:     %s\n", ep.LastError)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "refresh state from the serving backend before showing")

	return cmd
}

func newEndpointsDeleteCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ENDPOINT_ID",
		Aliases: []string{"delete"},
		Short:   "Tear down an endpoint",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			if err := c.DeleteEndpoint(args[0]); err != nil {
				return fmt.Errorf("failed to delete endpoint: %w", err)
			}

			fmt.Printf("Endpoint %s deleted\n", args[0])
			return nil
		},
	}
}
