package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/daybook/internal/stats"
	"github.com/sandeepkv93/daybook/internal/urgency"
	"github.com/sandeepkv93/daybook/internal/views"
)

func newStatsCmd() *cobra.Command {
	var (
		today  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print task completion and close reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			now, err := app.today(today)
			if err != nil {
				return err
			}
			svc, err := app.Service(nil)
			if err != nil {
				return err
			}
			snap, err := svc.Dashboard(cmd.Context(), now)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			writeStats(cmd.OutOrStdout(), snap)
			return nil
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "evaluate as of this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newRemindersCmd() *cobra.Command {
	var (
		today     string
		onlyClose bool
		threshold int
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List reminders, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			now, err := app.today(today)
			if err != nil {
				return err
			}
			svc, err := app.Service(nil)
			if err != nil {
				return err
			}
			var res urgency.Result
			if onlyClose {
				if !cmd.Flags().Changed("threshold") {
					threshold = svc.CloseThreshold()
				}
				res, err = svc.CloseReminders(cmd.Context(), now, threshold)
			} else {
				res, err = svc.ListReminders(cmd.Context(), now)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeReminders(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "evaluate as of this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&onlyClose, "close", false, "only reminders within the close threshold, in stored order")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "close threshold in days (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStats(w io.Writer, s stats.Snapshot) {
	fmt.Fprintf(w, "today:      %s\n", s.Today)
	fmt.Fprintf(w, "tasks:      %d open, %d done (%d%%)\n", s.OpenTasks, s.CompletedTasks, s.CompletionPercent())
	fmt.Fprintf(w, "reminders:  %d\n", s.Reminders)
	fmt.Fprintf(w, "bookmarks:  %d\n", s.Bookmarks)
	fmt.Fprintf(w, "notes:      %d\n", s.Notes)
	fmt.Fprintf(w, "close (<= %d days):\n", s.CloseThreshold)
	writeReminders(w, urgency.Result{Items: s.CloseReminders, Errors: s.ReminderErrors})
}

func writeReminders(w io.Writer, res urgency.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, u := range res.Items {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			u.Reminder.ID, u.Target, u.Reminder.Cycle, views.Remaining(u.RemainingDays), u.Reminder.Content)
	}
	_ = tw.Flush()
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  skipped %s: %v\n", e.ReminderID, e.Err)
	}
}
