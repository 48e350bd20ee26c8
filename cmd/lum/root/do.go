package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newDoCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a habit's check-in (today unless --date)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := a.dayArg(date)
			if err != nil {
				return err
			}
			id, err := a.habitArg(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			res, err := a.svc.ToggleCompletion(ctx, id, day)
			if err != nil {
				return friendly(err)
			}

			out := cmd.OutOrStdout()
			if !res.NewlyCompleted {
				fmt.Fprintf(out, "%s Unmarked %s for %s %s\n", ui.IconOpen, res.Habit.Name, day, ui.StreakText(res.Habit.Streak, res.Habit.BestStreak))
				return nil
			}
			fmt.Fprintf(out, "%s %s done for %s %s\n", ui.IconDone, res.Habit.Name, day, ui.StreakText(res.Habit.Streak, res.Habit.BestStreak))
			printReward(out, res.XPAwarded, res.LeveledUp, res.LevelAfter, res.NewBadges)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to log (YYYY-MM-DD, today, yesterday)")
	return cmd
}

func printReward(out io.Writer, xp int, leveledUp bool, level int, badges []engine.Badge) {
	if xp > 0 {
		fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s +%d XP", ui.IconSparkle, xp)))
	}
	if leveledUp {
		fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.Gold.Render(fmt.Sprintf("Level %d", level)))
	}
	for _, b := range badges {
		fmt.Fprintf(out, "%s Badge unlocked: %s %s\n", ui.IconTrophy, ui.BadgeText(b), ui.Muted.Render(b.Description))
	}
}
