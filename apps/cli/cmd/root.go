package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kyrosle/xdiff/packages/core/config"
	"github.com/kyrosle/xdiff/packages/core/runner"
	"github.com/kyrosle/xdiff/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag   string
	timeoutFlag  string
	insecureFlag bool
	proxyFlag    string
	noColorFlag  bool
	verboseFlag  bool
)

// mode separates the two binaries. They share every command; only the
// profile file shape and its defaults differ.
type mode struct {
	name          string
	diff          bool
	defaultConfig string
	configEnv     string
}

var (
	diffMode = mode{
		name:          "xdiff",
		diff:          true,
		defaultConfig: config.DefaultDiffConfigFile,
		configEnv:     "XDIFF_CONFIG",
	}
	requestMode = mode{
		name:          "xreq",
		defaultConfig: config.DefaultRequestConfigFile,
		configEnv:     "XREQ_CONFIG",
	}
)

func newRootCmd(m mode) *cobra.Command {
	root := &cobra.Command{
		Use:           m.name,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if m.diff {
		root.Short = "Diff two HTTP responses described by a profile"
		root.Long = `xdiff sends the two requests of a named profile, normalises both
responses and prints a unified diff of the result.

Examples:
  xdiff run -p todo
  xdiff run -p todo -e a=100 -e %user-agent=xdiff -e @title=hello
  xdiff parse > xdiff.yml`
	} else {
		root.Short = "Send an HTTP request described by a profile"
		root.Long = `xreq sends the request of a named profile and prints the response.

Examples:
  xreq run -p todo
  xreq run -p todo -e id=2`
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", getEnvString(m.configEnv, m.defaultConfig), fmt.Sprintf("Path to the profile file (env: %s)", m.configEnv))
	flags.StringVar(&timeoutFlag, "timeout", getEnvString("XDIFF_TIMEOUT", ""), "Request timeout, e.g. 10s or 500ms (env: XDIFF_TIMEOUT)")
	flags.BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("XDIFF_INSECURE", false), "Disable SSL certificate validation (env: XDIFF_INSECURE)")
	flags.StringVar(&proxyFlag, "proxy", getEnvString("XDIFF_PROXY", ""), "Proxy URL for HTTP requests (env: XDIFF_PROXY)")
	flags.BoolVar(&noColorFlag, "no-color", getEnvBool("XDIFF_NO_COLOR", false), "Disable colored output (env: XDIFF_NO_COLOR)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Log requests and timings to stderr")

	root.AddCommand(newRunCmd(m))
	root.AddCommand(newParseCmd(m))
	root.AddCommand(newValidateCmd(m))
	root.AddCommand(newListCmd(m))
	root.AddCommand(newInitCmd(m))
	root.AddCommand(newVersionCmd(m))
	root.AddCommand(newCompletionCmd(m))
	return root
}

// Execute runs the xdiff binary.
func Execute(v, bt string) {
	execute(diffMode, v, bt)
}

// ExecuteRequest runs the xreq binary.
func ExecuteRequest(v, bt string) {
	execute(requestMode, v, bt)
}

func execute(m mode, v, bt string) {
	version = v
	buildTime = bt
	root := newRootCmd(m)
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(exitCodeFor(err))
	}
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
}

// loadSettings layers the settings file under the command line flags.
func loadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings("")
	if err != nil {
		return nil, err
	}

	flags := &config.Settings{Proxy: proxyFlag}
	if timeoutFlag != "" {
		d, err := parseTimeout(timeoutFlag)
		if err != nil {
			return nil, err
		}
		flags.Timeout = int(d.Milliseconds())
	}
	if insecureFlag {
		flags.ValidateSSL = config.BoolPtr(false)
	}
	if noColorFlag {
		flags.NoColor = config.BoolPtr(true)
	}
	if verboseFlag {
		flags.Verbose = config.BoolPtr(true)
	}
	return settings.Merge(flags), nil
}

// newLogger returns the verbose logger, or nil when --verbose is off.
func newLogger(cmd *cobra.Command, settings *config.Settings) *log.Logger {
	if !settings.GetVerbose() {
		return nil
	}
	return log.New(cmd.ErrOrStderr(), "xdiff: ", log.LstdFlags)
}

func newRunner(cmd *cobra.Command, settings *config.Settings) *runner.Runner {
	return runner.NewRunner(&runner.Config{
		Timeout:     settings.TimeoutDuration(),
		ValidateSSL: settings.GetValidateSSL(),
		Proxy:       settings.Proxy,
		Logger:      newLogger(cmd, settings),
	})
}

// isInteractive decides once, at the output boundary, whether to colour.
func isInteractive(w io.Writer, settings *config.Settings) bool {
	if settings.GetNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newPrinter(cmd *cobra.Command, settings *config.Settings) *output.Printer {
	w := cmd.OutOrStdout()
	return output.NewPrinter(output.WithWriter(w), output.WithInteractive(isInteractive(w, settings)))
}
