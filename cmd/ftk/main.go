// cmd/ftk/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spantree/fluent-toolkit/cmd/ftk/commands"
	"github.com/spantree/fluent-toolkit/pkg/setup"
)

func main() {
	cmd := commands.NewCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := setup.Suggestion(err); hint != "" {
			fmt.Fprintf(os.Stderr, "  → %s\n", hint)
		}
		os.Exit(setup.ExitCode(err))
	}
}
