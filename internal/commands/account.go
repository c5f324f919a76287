package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd(opts *options) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and print its session token",
		Example: `  tracker signup --name Alice --email alice@example.com --password s3cret
  export TRACKER_TOKEN=$(tracker signup ... --quiet)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			session, err := opts.client().Signup(ctx, name, email, password)
			if err != nil {
				return err
			}

			quiet, _ := cmd.Flags().GetBool("quiet")
			out := cmd.OutOrStdout()
			if quiet {
				fmt.Fprintln(out, session.Token)
				return nil
			}
			fmt.Fprintln(out, okStyle.Render("Account created"))
			printUser(out, &session.User)
			printField(out, "Token", session.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().BoolP("quiet", "q", false, "print only the token")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in and print a session token",
		Example: `  export TRACKER_TOKEN=$(tracker login --email alice@example.com --password s3cret --quiet)`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			session, err := opts.client().Login(ctx, email, password)
			if err != nil {
				return err
			}

			quiet, _ := cmd.Flags().GetBool("quiet")
			out := cmd.OutOrStdout()
			if quiet {
				fmt.Fprintln(out, session.Token)
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", okStyle.Render("Logged in as"), session.User.Email)
			printField(out, "Token", session.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().BoolP("quiet", "q", false, "print only the token")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newMeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			me, err := opts.client().Me(ctx, creds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printUser(out, me)
			printField(out, "Projects", fmt.Sprintf("%d", len(me.Projects)))
			for _, p := range me.Projects {
				fmt.Fprint(out, "  ")
				printProjectLine(out, p)
			}
			return nil
		},
	}
}
