package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devplatform/tracker/internal/client"
	"github.com/spf13/cobra"
)

var validStatuses = []string{"REQUESTED", "TODO", "IN_PROGRESS", "DONE"}

func newAddTaskCmd(opts *options) *cobra.Command {
	var description, status string

	cmd := &cobra.Command{
		Use:   "add-task [project-id] [title]",
		Short: "Add a task to a project",
		Long: `Add a task to a project. Tasks added by clients always start as REQUESTED.

Examples:
  tracker add-task 6f1c... "Landing page"
  tracker add-task 6f1c... "Landing page" --status IN_PROGRESS -d "hero and footer"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status = strings.ToUpper(strings.TrimSpace(status))
			if status != "" && !contains(validStatuses, status) {
				return fmt.Errorf("invalid status %q (expected one of %s)", status, strings.Join(validStatuses, ", "))
			}

			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			task, err := opts.client().AddTask(ctx, creds, client.TaskInput{
				ProjectID:   args[0],
				Title:       args[1],
				Description: description,
				Status:      status,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render("Task created"))
			printTask(out, task)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "initial status (REQUESTED, TODO, IN_PROGRESS, DONE)")

	return cmd
}

func newTaskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "task [task-id]",
		Short: "Show a task with comments and time log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			task, err := opts.client().Task(ctx, creds, args[0])
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
}

func newCommentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "comment [task-id] [body]",
		Short: "Comment on a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			comment, err := opts.client().AddComment(ctx, creds, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Comment added"), idStyle.Render(comment.ID))
			return nil
		},
	}
}

func newLogTimeCmd(opts *options) *cobra.Command {
	var description, day string

	cmd := &cobra.Command{
		Use:   "log-time [task-id] [hours]",
		Short: "Log hours against a task",
		Long: `Log hours against a task. Only project owners can log time.

Examples:
  tracker log-time 9a2e... 1.5 -d "layout work"
  tracker log-time 9a2e... 3 -d "review" --date 2024-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil || hours < 0 {
				return fmt.Errorf("invalid hours %q", args[1])
			}

			input := client.LoggedTimeInput{
				TaskID:      args[0],
				Description: description,
				Hours:       hours,
			}
			if day != "" {
				d, err := parseDate(day)
				if err != nil {
					return err
				}
				input.Date = &d
			}

			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			entry, err := opts.client().AddLoggedTime(ctx, creds, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", okStyle.Render("Logged"), formatHours(entry.Hours), entry.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "what the time was spent on")
	cmd.Flags().StringVar(&day, "date", "", "day worked, YYYY-MM-DD or RFC 3339 (default now)")
	cmd.MarkFlagRequired("description")

	return cmd
}

// parseDate accepts a bare day or a full RFC 3339 timestamp
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
