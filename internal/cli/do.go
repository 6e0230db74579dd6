package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/daybook/internal/commands"
	"github.com/sandeepkv93/daybook/internal/service"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <command...>",
		Short: "Run a quick-entry command",
		Long: `Run one quick-entry command:

  add <task>
  remind <once|daily|weekly|monthly|yearly> <YYYY-MM-DD> <content>
  bookmark <url> [comment]
  done <task-id>
  advance <reminder-id>
  note <title>`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			parsed, err := commands.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			svc, err := app.Service(nil)
			if err != nil {
				return err
			}
			res, err := commands.Execute(parsed, handlers(cmd.Context(), svc))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func handlers(ctx context.Context, svc *service.Service) commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, err := svc.CreateTask(ctx, a.Content)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "task " + t.ID + " added"}, nil
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			r, err := svc.CreateReminder(ctx, service.ReminderInput{
				Content:    a.Content,
				Cycle:      string(a.Cycle),
				TargetDate: a.Target.String(),
			})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder %s set for %s (%s)", r.ID, r.TargetDate, r.Cycle)}, nil
		},
		Bookmark: func(a commands.BookmarkArgs) (commands.Result, error) {
			b, err := svc.CreateBookmark(ctx, a.URL, a.Comment)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "bookmark " + b.ID + " saved"}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := svc.CompleteTask(ctx, a.ID)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task %q done", t.Content)}, nil
		},
		Advance: func(a commands.TargetArgs) (commands.Result, error) {
			r, err := svc.AdvanceReminder(ctx, a.ID)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder %q moved to %s", r.Content, r.TargetDate)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			n, err := svc.CreateNote(ctx, a.Title, "")
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "note " + n.ID + " created"}, nil
		},
	}
}
