package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lexdesk/legal-assistant/internal/deadline"
	"github.com/lexdesk/legal-assistant/internal/domain"
)

func deadlineCmd(a *app) *cobra.Command {
	var path string
	c := &cobra.Command{
		Use:     "deadline",
		Aliases: []string{"deadlines"},
		Short:   "Track legal deadlines",
	}
	c.PersistentFlags().StringVar(&path, "file", "", "deadline store (defaults to the configured path)")

	open := func() (*deadline.Tracker, error) {
		p := path
		if p == "" {
			p = a.cfg.Deadlines.Path
		}
		return deadline.NewTracker(deadline.NewJSONStore(p),
			deadline.WithClock(a.now),
			deadline.WithLogger(a.logger))
	}

	c.AddCommand(
		deadlineAddCmd(open),
		deadlineListCmd(open),
		deadlineUpdateCmd(open),
		deadlineDeleteCmd(open),
		deadlineUpcomingCmd(a, open),
		deadlineExportCmd(open),
	)
	return c
}

type openTracker func() (*deadline.Tracker, error)

// deadlineFields are the editable fields shared by add and update.
type deadlineFields struct {
	title, description, date, priority, category, notes string
}

func (f *deadlineFields) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.title, "title", "t", "", "deadline title")
	fs.StringVarP(&f.description, "description", "d", "", "description")
	fs.StringVar(&f.date, "date", "", "due date (YYYY-MM-DD)")
	fs.StringVarP(&f.priority, "priority", "p", "Medium", "priority (High, Medium, Low)")
	fs.StringVar(&f.category, "category", "Other", "category (Court Filing, Client Meeting, Document Submission, Hearing, Compliance, Other)")
	fs.StringVar(&f.notes, "notes", "", "free-form notes")
}

// apply copies the flags that were set (or every flag when all is true) onto d.
func (f *deadlineFields) apply(fs *pflag.FlagSet, d *domain.Deadline, all bool) error {
	set := func(name string) bool { return all || fs.Changed(name) }
	if set("title") {
		d.Title = f.title
	}
	if set("description") {
		d.Description = f.description
	}
	if set("date") {
		d.Date = f.date
	}
	if set("notes") {
		d.Notes = f.notes
	}
	if set("priority") {
		p, err := domain.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		d.Priority = p
	}
	if set("category") {
		c, err := domain.ParseCategory(f.category)
		if err != nil {
			return err
		}
		d.Category = c
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("deadline.id", "invalid deadline id %q", s)
	}
	return id, nil
}

func dueLabel(days int) string {
	switch {
	case days == -1:
		return "overdue by 1 day"
	case days < 0:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day remaining"
	}
	return fmt.Sprintf("%d days remaining", days)
}

func deadlineAddCmd(open openTracker) *cobra.Command {
	f := &deadlineFields{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var d domain.Deadline
			if err := f.apply(cmd.Flags(), &d, true); err != nil {
				return err
			}
			t, err := open()
			if err != nil {
				return err
			}
			d, err = t.Add(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added deadline #%d: %s (due %s, %s)\n", d.ID, d.Title, d.Date, dueLabel(t.DaysRemaining(d)))
			return nil
		},
	}
	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func deadlineUpdateCmd(open openTracker) *cobra.Command {
	f := &deadlineFields{}
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := open()
			if err != nil {
				return err
			}
			d, err := t.Get(id)
			if err != nil {
				return err
			}
			if err := f.apply(cmd.Flags(), &d, false); err != nil {
				return err
			}
			if d, err = t.Update(d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated deadline #%d: %s (due %s, %s)\n", d.ID, d.Title, d.Date, dueLabel(t.DaysRemaining(d)))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func deadlineDeleteCmd(open openTracker) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a deadline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := open()
			if err != nil {
				return err
			}
			if err := t.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deadline #%d\n", id)
			return nil
		},
	}
}

func deadlineListCmd(open openTracker) *cobra.Command {
	var (
		priorities []string
		categories []string
		sortOrder  string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deadlines",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := deadline.ParseSortOrder(sortOrder)
			if err != nil {
				return err
			}
			var filter deadline.Filter
			for _, p := range priorities {
				parsed, err := domain.ParsePriority(p)
				if err != nil {
					return err
				}
				filter.Priorities = append(filter.Priorities, parsed)
			}
			for _, c := range categories {
				parsed, err := domain.ParseCategory(c)
				if err != nil {
					return err
				}
				filter.Categories = append(filter.Categories, parsed)
			}
			t, err := open()
			if err != nil {
				return err
			}
			writeDeadlines(cmd.OutOrStdout(), t, t.List(filter, order))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&priorities, "priority", nil, "only these priorities")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only these categories")
	cmd.Flags().StringVar(&sortOrder, "sort", "date-asc", "sort order (date-asc, date-desc, priority-desc, priority-asc)")
	return cmd
}

func deadlineUpcomingCmd(a *app, open openTracker) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Deadlines due within the next few days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.Deadlines.UpcomingDays
			}
			t, err := open()
			if err != nil {
				return err
			}
			upcoming := t.Upcoming(days)
			w := cmd.OutOrStdout()
			if len(upcoming) == 0 {
				fmt.Fprintf(w, "No deadlines in the next %d days.\n", days)
				return nil
			}
			for _, d := range upcoming {
				fmt.Fprintf(w, "%s  [%s] %s (%s)\n", d.Date, d.Priority, d.Title, dueLabel(t.DaysRemaining(d)))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", deadline.DefaultUpcomingDays, "look-ahead window in days")
	return cmd
}

func deadlineExportCmd(open openTracker) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every deadline to CSV, Excel or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := deadline.ParseExportFormat(format)
			if err != nil {
				return err
			}
			t, err := open()
			if err != nil {
				return err
			}
			if out == "-" {
				return deadline.Export(cmd.OutOrStdout(), f, t.List(deadline.Filter{}, deadline.SortDateAsc), t.Now())
			}
			if out == "" {
				out = f.Filename()
			}
			file, err := os.Create(out)
			if err != nil {
				return domain.Persistence("deadline.export", out, err)
			}
			if err := deadline.Export(file, f, t.List(deadline.Filter{}, deadline.SortDateAsc), t.Now()); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return domain.Persistence("deadline.export", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported deadlines to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format (csv, xlsx, json)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, or - for stdout (defaults to legal_deadlines.<ext>)")
	return cmd
}

func writeDeadlines(w io.Writer, t *deadline.Tracker, ds []domain.Deadline) {
	if len(ds) == 0 {
		fmt.Fprintln(w, "No deadlines found.")
		return
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Date", "Title", "Priority", "Category", "Status")
	for _, d := range ds {
		tbl.Row(strconv.Itoa(d.ID), d.Date, d.Title, d.Priority.String(), d.Category.String(), dueLabel(t.DaysRemaining(d)))
	}
	fmt.Fprintln(w, tbl.Render())
}
