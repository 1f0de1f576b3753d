// Package cli wires the cobra command surface: a listing report (the
// default), a DKIM verification report and a version command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codevuk/mxroute-tools/internal/config"
	"github.com/codevuk/mxroute-tools/internal/directadmin"
	"github.com/codevuk/mxroute-tools/internal/report"
)

// Exit codes, one per error class. DNS lookup failures never change the
// exit code: a broken record is report content, not an operational fault.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitUsage     = 2
	ExitTransport = 3
	ExitMalformed = 4
)

type options struct {
	host       string
	user       string
	pass       string
	timeout    int
	nameserver string
	configPath string
	noColor    bool
}

// Execute runs the tool and returns its exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mxroute-tools",
		Short: "Tools for the MXRoute email dashboard via the DirectAdmin API",
		// Execute owns error reporting; cobra must not print a second copy.
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation behaves like the list subcommand.
			return runList(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.host, "host", "s", "", "server short name, e.g. maildemo for maildemo.mxrouting.net")
	cmd.PersistentFlags().StringVarP(&opts.user, "user", "u", "", "username to log into the server")
	cmd.PersistentFlags().StringVarP(&opts.pass, "pass", "p", "", "login key or password, prompted when absent")
	cmd.PersistentFlags().IntVar(&opts.timeout, "timeout", 0, "HTTP request timeout in seconds (default 10)")
	cmd.PersistentFlags().StringVar(&opts.nameserver, "nameserver", "", "pin DNS lookups to one server (host or host:port)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a yaml config file")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored status output")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newDkimCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig merges file, environment and flag settings (flags win) and
// prompts for the secret when it is still absent.
func loadConfig(opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if opts.host != "" {
		cfg.Host = opts.host
	}
	if opts.user != "" {
		cfg.Username = opts.user
	}
	if opts.pass != "" {
		cfg.Secret = opts.pass
	}
	if opts.timeout > 0 {
		cfg.TimeoutSeconds = opts.timeout
	}
	if opts.nameserver != "" {
		cfg.Nameserver = opts.nameserver
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, &usageError{err: err}
	}

	if cfg.Secret == "" {
		secret, err := config.PromptSecret()
		if err != nil {
			return config.Config{}, err
		}
		cfg.Secret = secret
	}

	return cfg, nil
}

// newReportWriter builds the output writer, coloring only interactive runs.
func newReportWriter(cmd *cobra.Command, opts *options) *report.Writer {
	out := cmd.OutOrStdout()
	w := report.New(out)
	w.EnableColor(shouldColor(out, opts.noColor))
	return w
}

// shouldColor reports whether the stream the report actually goes to is an
// interactive terminal.
func shouldColor(out io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	var transport *directadmin.TransportError
	if errors.As(err, &transport) {
		return ExitTransport
	}
	var malformed *directadmin.MalformedResponseError
	if errors.As(err, &malformed) {
		return ExitMalformed
	}
	return ExitError
}
