package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyrosle/xdiff/packages/core/config"
	"github.com/kyrosle/xdiff/packages/core/profile"
)

func newListCmd(m mode) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the profiles in the profile file",
		Long: fmt.Sprintf(`List every profile by name with its method and URL.

Examples:
  %[1]s list
  %[1]s list -c ./profiles/%[1]s.yml`, m.name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listCommand(cmd, m)
		},
	}
}

func listCommand(cmd *cobra.Command, m mode) error {
	out := cmd.OutOrStdout()
	if m.diff {
		c, err := config.LoadDiffConfig(configFlag)
		if err != nil {
			return err
		}
		for _, name := range c.Names() {
			p := c.Profiles[name]
			fmt.Fprintf(out, "%s:\n", name)
			fmt.Fprintf(out, "  req1: %s\n", describe(&p.Req1))
			fmt.Fprintf(out, "  req2: %s\n", describe(&p.Req2))
			if len(p.Res.SkipHeaders) > 0 {
				fmt.Fprintf(out, "  skip_headers: %v\n", p.Res.SkipHeaders)
			}
			if len(p.Res.SkipBody) > 0 {
				fmt.Fprintf(out, "  skip_body: %v\n", p.Res.SkipBody)
			}
		}
		return nil
	}

	c, err := config.LoadRequestConfig(configFlag)
	if err != nil {
		return err
	}
	for _, name := range c.Names() {
		fmt.Fprintf(out, "%s: %s\n", name, describe(c.Profiles[name]))
	}
	return nil
}

func describe(p *profile.RequestProfile) string {
	return p.HTTPMethod() + " " + p.URL
}
