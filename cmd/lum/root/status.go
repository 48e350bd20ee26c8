package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var tip bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := a.svc.User(ctx)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			lvl := engine.LevelForXP(u.XP)
			nextReq := engine.XPRequiredForLevel(lvl + 1)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, u.Name))
			fmt.Fprintln(out, ui.LevelLine(u.Progression))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (next level at %d, %d to go)", u.XP, nextReq, nextReq-u.XP)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Badges"))
			for _, ach := range engine.Achievements(u.Progression) {
				if ach.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", ach.Icon, ui.Gold.Render(ach.Name), ui.Muted.Render("unlocked "+ach.UnlockedAt.Local().Format("2006-01-02")))
				} else {
					fmt.Fprintf(out, "- 🔒 %s %s\n", ach.Name, ui.Muted.Render(ach.Description))
				}
			}

			if tip {
				habits, err := a.svc.ListHabits(ctx, false)
				if err != nil {
					return friendly(err)
				}
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s %s\n", ui.IconCoach, a.coach.Insight(ctx, habits))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tip, "tip", false, "Ask the coach for a tip")
	return cmd
}
