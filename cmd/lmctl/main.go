package main

import (
	"os"

	"github.com/aws-samples/build-language-models-on-aws/cmd/lmctl/app"
)

func main() {
	cmd := app.NewLMCtlCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
