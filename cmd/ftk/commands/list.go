package commands

import (
	"github.com/spf13/cobra"

	"github.com/spantree/fluent-toolkit/pkg/module"
)

func newListCommand(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available MCP server modules",
		Long: `List every server module ftk can set up, with its category.

Core modules are selected by default during init; optional modules must be
picked explicitly or in the interactive prompt.`,
		Example: `  # List all modules
  ftk list

  # Machine-readable listing
  ftk list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := getFormatter(cmd, state)

			reg, err := module.NewRegistry(module.Builtin()...)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, reg.Count())
			for _, desc := range reg.All() {
				meta := desc.Meta()
				rows = append(rows, []string{
					desc.ID(),
					meta.Name,
					string(meta.Category),
					meta.Description,
				})
			}

			return formatter.PrintTable([]string{"ID", "Name", "Category", "Description"}, rows)
		},
	}

	cmd.Flags().String("output", "table", "Output format: json, table")
	cmd.Flags().Bool("quiet", false, "Suppress non-essential output")

	return cmd
}
