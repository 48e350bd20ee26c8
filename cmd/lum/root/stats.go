package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show check-ins, weekly consistency and best streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := a.svc.Stats(ctx)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Analytics"))
			fmt.Fprintln(out, ui.LabelValue("Total check-ins", st.TotalCheckIns))
			fmt.Fprintln(out, ui.LabelValue("Weekly consistency", fmt.Sprintf("%d%%", st.WeeklyConsistency)))
			fmt.Fprintln(out, ui.LabelValue("Longest streak", st.LongestStreak))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Last 7 days"))
			for _, d := range st.Week {
				fmt.Fprintf(out, "%s %s %s %s\n",
					ui.Key.Render(d.Day.String()[5:]),
					d.Day.Weekday().String()[:3],
					ui.ProgressBar(d.Percent, 100, 20),
					ui.Muted.Render(fmt.Sprintf("%3d%% (%d/%d)", d.Percent, d.Completed, d.Total)),
				)
			}

			if len(st.TopStreaks) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconFire+" Best streaks"))
				for _, s := range st.TopStreaks {
					fmt.Fprintf(out, "- %s %s %d\n", ui.Swatch(s.Color), s.Name, s.BestStreak)
				}
			}
			return nil
		},
	}
}
