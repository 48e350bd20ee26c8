package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newFocusCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "focus <id>",
		Short: "Run a focus timer for a habit and log it when it ends",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := a.habitArg(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()

			if minutes > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Focus for %d minutes… (ctrl+c to abort)", minutes)))
				select {
				case <-time.After(time.Duration(minutes) * time.Minute):
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			res, err := a.svc.CompleteFocusSession(ctx, id, a.svc.Today())
			if err != nil {
				return friendly(err)
			}
			if res.Completed {
				fmt.Fprintf(out, "%s %s done %s\n", ui.IconDone, res.Habit.Name, ui.StreakText(res.Habit.Streak, res.Habit.BestStreak))
			} else {
				fmt.Fprintf(out, "%s Focus bonus on %s\n", ui.IconFire, res.Habit.Name)
			}
			printReward(out, res.XPAwarded, res.LeveledUp, res.User.Level, res.NewBadges)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 25, "Timer length; 0 logs a session you already finished")
	return cmd
}
