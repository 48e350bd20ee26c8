package root

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/insight"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newCoachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coach",
		Short: "Get a short AI tip about your habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := a.svc.ListHabits(ctx, false)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconCoach, a.coach.Insight(ctx, habits))
			return nil
		},
	}
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message...]",
		Short: "Talk to the Lumina assistant (interactive without a message)",
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

			habits, err := a.svc.ListHabits(ctx, false)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			history := []insight.Message{{Role: insight.RoleModel, Text: insight.Greeting}}

			if len(args) > 0 {
				fmt.Fprintf(out, "%s %s\n", ui.IconCoach, a.coach.Chat(ctx, habits, history, strings.Join(args, " ")))
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", ui.IconCoach, insight.Greeting)
			if !a.coach.Configured() {
				fmt.Fprintln(out, ui.Warn.Render(insight.FallbackNoKey))
				return nil
			}
			sc := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, ui.Key.Render("you> "))
				if !sc.Scan() {
					fmt.Fprintln(out)
					return sc.Err()
				}
				msg := strings.TrimSpace(sc.Text())
				if msg == "" {
					continue
				}
				if msg == "exit" || msg == "quit" {
					return nil
				}
				reply := a.coach.Chat(ctx, habits, history, msg)
				fmt.Fprintf(out, "%s %s\n", ui.IconCoach, reply)
				history = append(history,
					insight.Message{Role: insight.RoleUser, Text: msg},
					insight.Message{Role: insight.RoleModel, Text: reply},
				)
				if ctx.Err() != nil {
					return nil
				}
			}
		},
	}
}
