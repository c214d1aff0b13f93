package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyrosle/xdiff/packages/core/config"
)

const exampleDiffConfig = `todo:
  req1:
    url: https://jsonplaceholder.typicode.com/todos/1
    params:
      a: 100
  req2:
    url: https://jsonplaceholder.typicode.com/todos/2
    params:
      c: 200
  res:
    skip_headers:
      - report-to
      - date
      - age
      - cf-ray
      - etag
      - expires
      - x-ratelimit-remaining
      - x-ratelimit-reset
rust:
  req1:
    method: GET
    url: https://www.rust-lang.org/
    headers:
      user-agent: Aloha
  req2:
    method: GET
    url: https://www.rust-lang.org/
  res:
    skip_headers:
      - date
      - via
      - x-amz-cf-id
      - age
      - x-cache
`

const exampleRequestConfig = `todo:
  url: https://jsonplaceholder.typicode.com/todos/1
  params:
    a: 100
user:
  method: POST
  url: https://jsonplaceholder.typicode.com/users
  headers:
    user-agent: xreq
  body:
    name: Aloha
`

func newInitCmd(m mode) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example profile file",
		Long: fmt.Sprintf(`Write an example profile file to the --config path (default %[2]s).

Examples:
  %[1]s init
  %[1]s init --force`, m.name, m.defaultConfig),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initCommand(cmd, m, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func initCommand(cmd *cobra.Command, m mode, force bool) error {
	if !force {
		if _, err := os.Stat(configFlag); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFlag)
		}
	}

	content := exampleRequestConfig
	if m.diff {
		content = exampleDiffConfig
		if _, err := config.ParseDiffConfig([]byte(content)); err != nil {
			return err
		}
	} else if _, err := config.ParseRequestConfig([]byte(content)); err != nil {
		return err
	}

	if err := os.WriteFile(configFlag, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFlag)
	fmt.Fprintf(cmd.OutOrStdout(), "Run '%s run -p todo' to try it.\n", m.name)
	return nil
}
