package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyrosle/xdiff/packages/core/config"
)

func newValidateCmd(m mode) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the profile file without sending requests",
		Long: fmt.Sprintf(`Load the profile file and check every profile without sending anything.

Examples:
  %[1]s validate
  %[1]s validate -c ./profiles/%[1]s.yml`, m.name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return validateCommand(cmd, m)
		},
	}
}

func validateCommand(cmd *cobra.Command, m mode) error {
	var count int
	if m.diff {
		c, err := config.LoadDiffConfig(configFlag)
		if err != nil {
			return err
		}
		count = len(c.Profiles)
	} else {
		c, err := config.LoadRequestConfig(configFlag)
		if err != nil {
			return err
		}
		count = len(c.Profiles)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d profiles)\n", configFlag, count)
	return nil
}
