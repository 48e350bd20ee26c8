package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newJournalCmd() *cobra.Command {
	var date string
	var mood string
	var note string
	var show bool

	cmd := &cobra.Command{
		Use:   "journal <id> [note...]",
		Short: "Write a reflection for a day (completes the day if still open)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
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

			id, err := a.habitArg(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()

			if show {
				h, err := a.svc.Habit(ctx, id)
				if err != nil {
					return friendly(err)
				}
				fmt.Fprintln(out, ui.Heading(ui.IconJournal, h.Name))
				days := h.Journal.Days()
				if len(days) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(no entries)"))
				}
				for i := len(days) - 1; i >= 0; i-- {
					e, _ := h.Journal.Entry(days[i])
					fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(days[i].String()), ui.MoodText(e.Mood), e.Note)
				}
				return nil
			}

			day, err := a.dayArg(date)
			if err != nil {
				return err
			}
			m, err := engine.ParseMood(mood)
			if err != nil {
				return err
			}
			if len(args) > 1 {
				note = strings.Join(args[1:], " ")
			}

			res, err := a.svc.AddJournalEntry(ctx, id, day, note, m)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(out, "%s Reflection saved for %s on %s (%s)\n", ui.IconJournal, res.Habit.Name, day, ui.MoodText(m))
			if res.Completed {
				fmt.Fprintf(out, "%s %s marked done %s\n", ui.IconDone, res.Habit.Name, ui.StreakText(res.Habit.Streak, res.Habit.BestStreak))
			}
			printReward(out, res.XPAwarded, res.LeveledUp, res.User.Level, res.NewBadges)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&mood, "mood", "m", "great", "Mood (great|neutral|difficult)")
	cmd.Flags().StringVar(&note, "note", "", "Reflection text")
	cmd.Flags().BoolVar(&show, "show", false, "Print the habit's journal instead of writing")
	return cmd
}
