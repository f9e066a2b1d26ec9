package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/dto"
)

// NewPackagesCommand creates the "packages" command group for building
// and managing model packages.
func NewPackagesCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "packages",
		Aliases: []string{"package", "pkg"},
		Short:   "Build and manage model packages",
	}

	cmd.AddCommand(
		newPackagesBuildCommand(globalOpts),
		newPackagesListCommand(globalOpts),
		newPackagesShowCommand(globalOpts),
		newPackagesDeleteCommand(globalOpts),
		newPackagesDownloadURLCommand(globalOpts),
	)

	return cmd
}

func newPackagesBuildCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		baseModelID  string
		overrides    []string
		requirements []string
		labels       []string
	)

	cmd := &cobra.Command{
		Use:   "build NAME",
		Short: "Build a model package from a base model",
		Long: `Build a model package: assemble serving properties from the base
model's catalog defaults plus any overrides, archive them together with
an optional requirements file, and upload the archive to object storage.`,
		Example: `  # Package Llama 3 with default serving properties
  lmctl packages build my-llama --base-model llama-3-8b-instruct

  # Override the batch size and pin an extra dependency
  lmctl packages build my-llama --base-model llama-3-8b-instruct \
    --set option.max_rolling_batch_size=64 --require "protobuf==3.20.3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			pkg, err := c.BuildPackage(&dto.BuildPackageRequest{
				Name:         args[0],
				BaseModelID:  baseModelID,
				Overrides:    parseKeyValues(overrides),
				Requirements: requirements,
				Labels:       parseKeyValues(labels),
			})
			if err != nil {
				return fmt.Errorf("failed to build package: %w", err)
			}

			fmt.Printf("Package %s built (%d bytes)\n", pkg.Name, pkg.SizeBytes)
			fmt.Printf("ID:       %s\n", pkg.ID)
			fmt.Printf("Storage:  %s\n", pkg.StorageURI)
			fmt.Printf("Checksum: %s\n", pkg.Checksum)

			return nil
		},
	}

	cmd.Flags().StringVar(&baseModelID, "base-model", "", "base model ID from the catalog (required)")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "serving property override as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&requirements, "require", nil, "pip requirement line for requirements.txt (repeatable)")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "label as key=value (repeatable)")
	cmd.MarkFlagRequired("base-model")

	return cmd
}

func newPackagesListCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		baseModelID string
		limit       int
		offset      int
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List model packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			resp, err := c.ListPackages(baseModelID, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list packages: %w", err)
			}

			if len(resp.Items) == 0 {
				fmt.Println("No model packages found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBASE MODEL\tSIZE\tCREATED")
			for _, p := range resp.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					p.ID, p.Name, p.BaseModelID, p.SizeBytes,
					p.CreatedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&baseModelID, "base-model", "", "filter by base model ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")

	return cmd
}

func newPackagesShowCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show PACKAGE_ID_OR_NAME",
		Short: "Show details of a model package by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			p, err := c.GetPackage(args[0])
			if err != nil {
				return fmt.Errorf("failed to get package: %w", err)
			}

			fmt.Printf("ID:         %s\n", p.ID)
			fmt.Printf("Name:       %s\n", p.Name)
			fmt.Printf("Base model: %s\n", p.BaseModelID)
			fmt.Printf("Storage:    %s\n", p.StorageURI)
			fmt.Printf("Checksum:   %s\n", p.Checksum)
			fmt.Printf("Size:       %d bytes\n", p.SizeBytes)
			fmt.Printf("Created:    %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Println()
			fmt.Println("serving.properties:")
			fmt.Println(p.Properties)

			return nil
		},
	}
}

func newPackagesDeleteCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm PACKAGE_ID",
		Aliases: []string{"delete"},
		Short:   "Delete a model package and its stored archive",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			if err := c.DeletePackage(args[0]); err != nil {
				return fmt.Errorf("failed to delete package: %w", err)
			}

			fmt.Printf("Package %s deleted\n", args[0])
			return nil
		},
	}
}

func newPackagesDownloadURLCommand(globalOpts *GlobalOptions) *cobra.Command {
	var expirySeconds int

	cmd := &cobra.Command{
		Use:   "download-url PACKAGE_ID",
		Short: "Print a presigned download URL for the package archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := getClient(globalOpts)

			resp, err := c.PackageDownloadURL(args[0], expirySeconds)
			if err != nil {
				return fmt.Errorf("failed to get download URL: %w", err)
			}

			fmt.Println(resp.URL)
			fmt.Fprintf(os.Stderr, "Expires at %s\n", resp.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().IntVar(&expirySeconds, "expiry", 0, "URL validity in seconds (default: server default)")

	return cmd
}
