package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

func newSignupCmd() *cobra.Command {
	var name string
	var seed bool

	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account on this machine and sign in",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("email is required")
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

			u, err := a.ids.SignUp(ctx, name, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Welcome to Lumina, %s!", ui.IconSparkle, u.Name)))
			if seed {
				n, err := a.svc.SeedDefaults(ctx)
				if err != nil {
					return err
				}
				if n > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Added %d starter habits. See `lum list`.", n)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	cmd.Flags().BoolVar(&seed, "seed", true, "Create the starter habits")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in as an existing user",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("email is required")
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

			u, err := a.ids.LogIn(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Signed in as "+u.Name))
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.ids.LogOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Signed out."))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := a.ids.RequireUser(ctx)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Name", u.Name))
			fmt.Fprintln(out, ui.LabelValue("Email", u.Email))
			fmt.Fprintln(out, ui.LabelValue("Role", u.Role))
			fmt.Fprintln(out, ui.LabelValue("ID", ui.Muted.Render(u.ID)))
			return nil
		},
	}
}
