package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spantree/fluent-toolkit/pkg/logging"
	"github.com/spantree/fluent-toolkit/pkg/settings"
)

const cliExecutable = "ftk"

// rootState carries settings resolved in PersistentPreRunE down to the
// subcommands.
type rootState struct {
	settings settings.Settings
}

// NewCommand constructs the top-level ftk CLI command, wiring global flags,
// settings resolution, and logging setup.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
	)
	state := &rootState{settings: settings.Default()}

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "ftk sets up MCP servers for Claude Code",
		Long: `ftk provisions Model Context Protocol servers for Claude Code: it checks
the host tool, validates prerequisites, installs what is missing, and writes
the merged server configuration to .mcp.json in the current project.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configFile
			if path == "" {
				path = settings.DefaultFilePath()
			}

			loaded, err := settings.Load(path, cmd.Flags())
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			state.settings = loaded

			level := logging.LevelForVerbosity(verbosityCount, loaded.Log.Level)
			if err := logging.ConfigureGlobalLogging(level); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			if loaded.NoColor {
				color.NoColor = true
			}
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Settings file path (default: ~/.config/ftk/config.yaml)")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")

	settings.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newInitCommand(state))
	cmd.AddCommand(newListCommand(state))
	cmd.AddCommand(newDoctorCommand(state))
	cmd.AddCommand(newVersionCommand())

	return cmd
}
