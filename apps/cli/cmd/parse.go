package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kyrosle/xdiff/packages/core/args"
	"github.com/kyrosle/xdiff/packages/core/config"
	"github.com/kyrosle/xdiff/packages/core/profile"
	"github.com/kyrosle/xdiff/packages/core/runner"
	"github.com/kyrosle/xdiff/packages/errdef"
	"github.com/kyrosle/xdiff/packages/prompt"
	"github.com/kyrosle/xdiff/packages/response"
)

// headerChooser picks the header names to skip from those req1 returned.
type headerChooser func(names []string) ([]int, error)

func newParseCmd(m mode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Build a profile interactively from URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return parseCommand(cmd, m)
		},
	}
	if m.diff {
		cmd.Long = `Ask for two URLs and a profile name, send the first request once and
offer its response headers for skip_headers. The profile is printed as
YAML, ready to be appended to xdiff.yml.

Example:
  xdiff parse >> xdiff.yml`
	} else {
		cmd.Long = `Ask for a URL and a profile name and print the profile as YAML.

Example:
  xreq parse >> xreq.yml`
	}
	return cmd
}

func parseCommand(cmd *cobra.Command, m mode) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	p := prompt.New(prompt.WithInput(cmd.InOrStdin()), prompt.WithOutput(cmd.ErrOrStderr()))

	var doc any
	if m.diff {
		url1, err := p.Input("Url1")
		if err != nil {
			return promptError(err)
		}
		url2, err := p.Input("Url2")
		if err != nil {
			return promptError(err)
		}
		name, err := p.Input("Give this a profile name")
		if err != nil {
			return promptError(err)
		}

		choose := func(names []string) ([]int, error) {
			return p.MultiSelect("Select response headers to skip", names)
		}
		c, err := buildDiffConfig(cmd.Context(), newRunner(cmd, settings), name, url1, url2, choose)
		if err != nil {
			return promptError(err)
		}
		doc = c
	} else {
		rawURL, err := p.Input("Url")
		if err != nil {
			return promptError(err)
		}
		name, err := p.Input("Give this a profile name")
		if err != nil {
			return promptError(err)
		}
		c, err := buildRequestConfig(name, rawURL)
		if err != nil {
			return err
		}
		doc = c
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "encode profile")
	}
	newPrinter(cmd, settings).YAML(string(data))
	return nil
}

// buildDiffConfig sends req1 once so the user can choose which of its
// headers to leave out of every future diff.
func buildDiffConfig(ctx context.Context, r *runner.Runner, name, url1, url2 string, choose headerChooser) (*config.DiffConfig, error) {
	req1, err := profile.ParseURL(url1)
	if err != nil {
		return nil, fmt.Errorf("url1: %w", err)
	}
	req2, err := profile.ParseURL(url2)
	if err != nil {
		return nil, fmt.Errorf("url2: %w", err)
	}

	resp, err := r.Send(ctx, req1, args.Args{})
	if err != nil {
		return nil, fmt.Errorf("req1: %w", err)
	}

	names := response.HeaderKeys(resp)
	chosen, err := choose(names)
	if err != nil {
		return nil, err
	}
	var skip []string
	for _, i := range chosen {
		skip = append(skip, names[i])
	}

	dp := profile.NewDiffProfile(*req1, *req2, profile.NewResponseProfile(skip, nil))
	return config.NewDiffConfig(map[string]*profile.DiffProfile{name: dp}), nil
}

func buildRequestConfig(name, rawURL string) (*config.RequestConfig, error) {
	req, err := profile.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return config.NewRequestConfig(map[string]*profile.RequestProfile{name: req}), nil
}

func promptError(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return errdef.Wrap(errdef.CodeUsage, err, "")
	}
	return err
}
