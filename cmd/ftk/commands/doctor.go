package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spantree/fluent-toolkit/pkg/host"
)

func newDoctorCommand(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check host tool compatibility",
		Long: `Check whether Claude Code is installed and meets the minimum version.

Reports the executable path, the detected install method, and the installed
version. Exits non-zero when the host tool is missing or too old.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := getFormatter(cmd, state)
			checker := host.NewChecker()
			res := checker.Check(cmd.Context())

			if formatter.IsJSON() {
				obj := map[string]any{
					"installed":     res.Installed,
					"path":          res.Path,
					"method":        res.Method,
					"meets_minimum": res.MeetsMinimum,
					"min_version":   host.MinVersion,
				}
				if res.Version != nil {
					obj["version"] = res.Version.String()
				}
				if res.VersionErr != nil {
					obj["version_error"] = res.VersionErr.Error()
				}
				if err := formatter.PrintJSON(obj); err != nil {
					return err
				}
			} else {
				if err := printDoctorTable(cmd, res); err != nil {
					return err
				}
			}

			if !res.Installed {
				return fmt.Errorf("%w: install it with: %s", host.ErrNotFound, host.InstallCommand(host.MethodUnknown))
			}
			if res.VersionErr == nil && !res.MeetsMinimum {
				return fmt.Errorf("%w: found %s, need %s or newer; upgrade with: %s",
					host.ErrIncompatible, res.Version, host.MinVersion, checker.UpgradeCommand())
			}
			return nil
		},
	}

	cmd.Flags().String("output", "table", "Output format: json, table")
	cmd.Flags().Bool("quiet", false, "Suppress non-essential output")

	return cmd
}

func printDoctorTable(cmd *cobra.Command, res host.Result) error {
	out := cmd.OutOrStdout()

	if !res.Installed {
		fmt.Fprintf(out, "✗ %s not found on PATH\n", host.Binary)
		return nil
	}

	fmt.Fprintf(out, "✓ %s found at %s (installed via %s)\n", host.Binary, res.Path, res.Method)
	switch {
	case res.VersionErr != nil:
		fmt.Fprintf(out, "⚠ version could not be determined: %v\n", res.VersionErr)
	case res.MeetsMinimum:
		fmt.Fprintf(out, "✓ version %s meets minimum %s\n", res.Version, host.MinVersion)
	default:
		fmt.Fprintf(out, "✗ version %s is below minimum %s\n", res.Version, host.MinVersion)
	}
	return nil
}
