package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive today board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := a.svc.User(ctx); err != nil {
				return friendly(err)
			}
			return tui.RunBoard(ctx, a.svc, cmd.OutOrStdout())
		},
	}
}
