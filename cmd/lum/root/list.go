package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with today's check-in and streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := a.svc.ListHabits(ctx, all)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			today := a.svc.Today()
			fmt.Fprintln(out, ui.Heading(ui.IconHabit, fmt.Sprintf("Habits · %s", today)))
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet, add one with `lum add <name>`)"))
				return nil
			}
			for _, h := range habits {
				line := fmt.Sprintf("%s %s %s %s  %s  %s",
					ui.DoneIcon(h.IsCompleted(today)),
					ui.Muted.Render(shortID(h.ID)),
					ui.Swatch(h.Color),
					h.Name,
					ui.CategoryText(h.Category),
					ui.StreakText(h.Streak, h.BestStreak),
				)
				if h.Archived {
					line += " " + ui.Muted.Render("[archived]")
				} else if !h.Frequency.ScheduledOn(today, h.StartDate) {
					line += " " + ui.Muted.Render("(rest day)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived habits")
	return cmd
}
