package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/tracker"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func categoryHelp() string {
	ids := make([]string, 0, len(engine.Categories))
	for _, c := range engine.Categories {
		ids = append(ids, string(c.ID))
	}
	return strings.Join(ids, "|")
}

func habitFlags(cmd *cobra.Command, in *tracker.HabitInput) {
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "Category ("+categoryHelp()+")")
	cmd.Flags().StringVarP(&in.Frequency, "freq", "f", "", "Frequency (daily|weekdays|weekly)")
	cmd.Flags().StringVar(&in.Color, "color", "", "Color as #rrggbb")
	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "Start date (YYYY-MM-DD)")
}

func newAddCmd() *cobra.Command {
	var in tracker.HabitInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
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

			in.Name = strings.Join(args, " ")
			h, err := a.svc.CreateHabit(ctx, in)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.IconPlus, ui.Swatch(h.Color), h.Name, ui.Muted.Render(shortID(h.ID)))
			return nil
		},
	}

	habitFlags(cmd, &in)
	return cmd
}

func newEditCmd() *cobra.Command {
	var in tracker.HabitInput

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a habit's name, category, frequency, color or description",
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

			id, err := a.habitArg(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			h, err := a.svc.UpdateHabit(ctx, id, in)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", ui.Swatch(h.Color), h.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "New name")
	habitFlags(cmd, &in)
	return cmd
}

func newArchiveCmd(archive bool) *cobra.Command {
	use, short := "archive <id>", "Hide a habit from today's list (history is kept)"
	if !archive {
		use, short = "unarchive <id>", "Bring an archived habit back"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
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

			id, err := a.habitArg(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			h, err := a.svc.SetArchived(ctx, id, archive)
			if err != nil {
				return friendly(err)
			}
			verb := "Archived"
			if !archive {
				verb = "Restored"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconArchive, verb, h.Name)
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit and its history",
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

			id, err := a.habitArg(ctx, args[0])
			if err != nil {
				return friendly(err)
			}
			if err := a.svc.DeleteHabit(ctx, id); err != nil {
				return friendly(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted "+shortID(id)))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
