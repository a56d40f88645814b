package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spantree/fluent-toolkit/cmd/ftk/internal/format"
)

// getFormatter creates a formatter from command flags and resolved settings
func getFormatter(cmd *cobra.Command, state *rootState) format.Formatter {
	mode := format.ModeTable
	if flag := cmd.Flag("output"); flag != nil {
		mode = format.ParseMode(flag.Value.String())
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	useColor := !state.settings.NoColor && !color.NoColor
	return format.New(os.Stdout, os.Stderr, mode, quiet, useColor)
}
