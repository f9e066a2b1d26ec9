package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewInvokeCommand creates the "invoke" command for sending a JSON
// payload to an in-service endpoint.
func NewInvokeCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		dataFile string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "invoke ENDPOINT_ID [PAYLOAD]",
		Short: "Invoke an endpoint with a JSON payload",
		Long: `Invoke an in-service endpoint. The payload can be given inline as the
second argument, read from a file with --data, or piped through stdin.`,
		Example: `  # Inline payload
  lmctl invoke 3b2a... '{"inputs": "What is the capital of France?"}'

  # Payload from a file
  lmctl invoke 3b2a... --data prompt.json

  # Payload from stdin
  echo '{"inputs": "hello"}' | lmctl invoke 3b2a...`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args, dataFile)
			if err != nil {
				return err
			}

			c := getClient(globalOpts)

			resp, err := c.Invoke(args[0], payload)
			if err != nil {
				return fmt.Errorf("invocation failed: %w", err)
			}

			if raw {
				os.Stdout.Write(resp.Output)
				fmt.Println()
			} else {
				var pretty json.RawMessage = resp.Output
				indented, err := json.MarshalIndent(pretty, "", "  ")
				if err != nil {
					os.Stdout.Write(resp.Output)
					fmt.Println()
				} else {
					fmt.Println(string(indented))
				}
				fmt.Fprintf(os.Stderr, "Latency: %dms\n", resp.LatencyMS)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "read the payload from a file")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw response body without formatting")

	return cmd
}

// readPayload resolves the invocation payload from the inline argument,
// the --data file, or stdin, in that order.
func readPayload(args []string, dataFile string) (json.RawMessage, error) {
	if len(args) == 2 {
		return json.RawMessage(args[1]), nil
	}

	if dataFile != "" {
		data, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		return json.RawMessage(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		return json.RawMessage(data), nil
	}

	return nil, fmt.Errorf("no payload given: pass it inline, with --data, or on stdin")
}
