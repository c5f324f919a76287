// Package commands implements the tracker command-line client.
package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/devplatform/tracker/internal/client"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultServer = "http://localhost:8080"

// options are the persistent flags shared by every subcommand
type options struct {
	server  string
	token   string
	timeout time.Duration
	verbose bool
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Command-line client for the tracker API",
		Long: `tracker talks to a tracker server over GraphQL.
Sign up or log in to get a token, then pass it with --token or TRACKER_TOKEN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("tracker {{.Version}} (" + commit + ", " + date + ")\n")

	serverDefault := os.Getenv("TRACKER_SERVER")
	if serverDefault == "" {
		serverDefault = defaultServer
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", serverDefault, "tracker server base URL (env TRACKER_SERVER)")
	flags.StringVar(&opts.token, "token", os.Getenv("TRACKER_TOKEN"), "session token (env TRACKER_TOKEN)")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(newSignupCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newMeCmd(opts))
	rootCmd.AddCommand(newProjectsCmd(opts))
	rootCmd.AddCommand(newProjectCmd(opts))
	rootCmd.AddCommand(newAddProjectCmd(opts))
	rootCmd.AddCommand(newAddClientCmd(opts))
	rootCmd.AddCommand(newDeleteProjectCmd(opts))
	rootCmd.AddCommand(newAddTaskCmd(opts))
	rootCmd.AddCommand(newTaskCmd(opts))
	rootCmd.AddCommand(newCommentCmd(opts))
	rootCmd.AddCommand(newLogTimeCmd(opts))

	return rootCmd
}

func (o *options) client() *client.Client {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return client.New(o.server, o.timeout, logger)
}

// credentials returns the session token, failing early when none is set
func (o *options) credentials() (client.Credentials, error) {
	if o.token == "" {
		return client.Credentials{}, errors.New("not logged in: pass --token or set TRACKER_TOKEN")
	}
	return client.Credentials{Token: o.token}, nil
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}
