// Package app implements the lmctl command-line interface.
//
// Commands are organized hierarchically with cobra: a root command
// carrying global flags (server address, project ID) and per-resource
// subcommand groups for base models, packages, training jobs and
// endpoints.
package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aws-samples/build-language-models-on-aws/cmd/lmctl/client"
)

const (
	cliName = "lmctl"

	defaultServerURL = "http://localhost:8080"
)

// GlobalOptions holds flags common to all commands.
type GlobalOptions struct {
	// ServerURL is the llm-platform server address.
	ServerURL string

	// ProjectID scopes every request (sent as X-Project-ID).
	ProjectID string
}

// NewLMCtlCommand creates the root lmctl command with all subcommands.
func NewLMCtlCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: "lmctl - manage language model packages, training jobs and endpoints",
		Long: `lmctl is a command-line tool for the llm-platform server.

It builds model packages from catalog base models, launches managed
training jobs, deploys inference endpoints and invokes them.

The server address and project can also be set through the
LMCTL_SERVER and LMCTL_PROJECT environment variables.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "",
		"llm-platform server address (default: "+defaultServerURL+")")
	cmd.PersistentFlags().StringVarP(&opts.ProjectID, "project", "p", "",
		"project ID to scope requests to (or set LMCTL_PROJECT)")

	cmd.AddCommand(
		NewModelsCommand(opts),
		NewPackagesCommand(opts),
		NewTrainCommand(opts),
		NewEndpointsCommand(opts),
		NewInvokeCommand(opts),
	)

	return cmd
}

// getClient builds an API client from global options, falling back to
// environment variables and then built-in defaults. The project ID has
// no default; commands fail server-side without one.
func getClient(opts *GlobalOptions) *client.Client {
	serverURL := opts.ServerURL
	if serverURL == "" {
		serverURL = os.Getenv("LMCTL_SERVER")
	}
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	projectID := opts.ProjectID
	if projectID == "" {
		projectID = os.Getenv("LMCTL_PROJECT")
	}

	return client.NewClient(serverURL, projectID)
}

// parseKeyValues converts repeated "key=value" flag values into a map.
func parseKeyValues(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		for i := 0; i < len(pair); i++ {
			if pair[i] == '=' {
				out[pair[:i]] = pair[i+1:]
				break
			}
		}
	}
	return out
}
