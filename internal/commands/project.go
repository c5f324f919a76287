package commands

import (
	"fmt"

	"github.com/devplatform/tracker/internal/client"
	"github.com/spf13/cobra"
)

func newProjectsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "List your projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			projects, err := opts.client().MyProjects(ctx, creds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet")
				return nil
			}
			for _, p := range projects {
				printProjectLine(out, p)
			}
			return nil
		},
	}
}

func newProjectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "project [project-id]",
		Short: "Show a project with its members and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			project, err := opts.client().Project(ctx, creds, args[0])
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), project)
			return nil
		},
	}
}

func newAddProjectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add-project [title]",
		Short: "Create a project you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			project, err := opts.client().AddProject(ctx, creds, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render("Project created"))
			printProject(out, project)
			return nil
		},
	}
}

func newAddClientCmd(opts *options) *cobra.Command {
	var input client.ClientInput

	cmd := &cobra.Command{
		Use:   "add-client [project-id]",
		Short: "Add a client to a project",
		Long: `Add a client to a project you own. If no account exists for the email,
one is created with the given name and password.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			project, err := opts.client().AddClient(ctx, creds, args[0], input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", okStyle.Render("Client added:"), input.Email)
			printProject(out, project)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "client email address")
	cmd.Flags().StringVar(&input.Name, "name", "", "name for a new account")
	cmd.Flags().StringVar(&input.Password, "password", "", "password for a new account")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newDeleteProjectCmd(opts *options) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "delete-project [project-id]",
		Short: "Delete a project with all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			project, err := opts.client().DeleteProject(ctx, creds, args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", okStyle.Render("Deleted project"), project.Title, idStyle.Render(project.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "your password, if the server requires it")

	return cmd
}
