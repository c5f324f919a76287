package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devplatform/tracker/internal/client"
)

// Color palette
const (
	ColorAccent   = "#7D56F4"
	ColorMuted    = "#8A8A8A"
	ColorSuccess  = "#4CAF50"
	ColorWarning  = "#FFB300"
	ColorProgress = "#29B6F6"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))

	statusStyles = map[string]lipgloss.Style{
		"REQUESTED":   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)),
		"TODO":        lipgloss.NewStyle(),
		"IN_PROGRESS": lipgloss.NewStyle().Foreground(lipgloss.Color(ColorProgress)),
		"DONE":        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)),
	}
)

func renderStatus(status string) string {
	style, ok := statusStyles[status]
	if !ok {
		return status
	}
	return style.Render(status)
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".") + "h"
}

func names(users []client.User) string {
	if len(users) == 0 {
		return "-"
	}
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, fmt.Sprintf("%s <%s>", u.Name, u.Email))
	}
	return strings.Join(out, ", ")
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", label+":")), value)
}

func printUser(w io.Writer, u *client.User) {
	fmt.Fprintln(w, titleStyle.Render(u.Name)+" "+idStyle.Render(u.ID))
	printField(w, "Email", u.Email)
	printField(w, "Role", u.Role)
}

func printProjectLine(w io.Writer, p client.Project) {
	fmt.Fprintf(w, "%s  %s\n", idStyle.Render(p.ID), titleStyle.Render(p.Title))
}

func printProject(w io.Writer, p *client.Project) {
	fmt.Fprintln(w, titleStyle.Render(p.Title)+" "+idStyle.Render(p.ID))
	printField(w, "Owners", names(p.Owners))
	printField(w, "Clients", names(p.Clients))
	if len(p.Tasks) == 0 {
		printField(w, "Tasks", "-")
		return
	}
	printField(w, "Tasks", fmt.Sprintf("%d", len(p.Tasks)))
	for _, t := range p.Tasks {
		fmt.Fprintf(w, "  %s  %-11s %s (%s)\n", idStyle.Render(t.ID), renderStatus(t.Status), t.Title, formatHours(t.TotalHours))
	}
}

func printTask(w io.Writer, t *client.Task) {
	fmt.Fprintln(w, titleStyle.Render(t.Title)+" "+idStyle.Render(t.ID))
	printField(w, "Status", renderStatus(t.Status))
	if t.Description != "" {
		printField(w, "About", t.Description)
	}
	printField(w, "Logged", formatHours(t.TotalHours))

	if len(t.Comments) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Comments:"))
		for _, c := range t.Comments {
			author := "?"
			if c.User != nil {
				author = c.User.Name
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), author, c.Body)
		}
	}
	if len(t.TimeLog) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Time log:"))
		for _, e := range t.TimeLog {
			author := "?"
			if e.User != nil {
				author = e.User.Name
			}
			fmt.Fprintf(w, "  %s %6s  %s: %s\n", e.Date.Format("2006-01-02"), formatHours(e.Hours), author, e.Description)
		}
	}
}
