package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

const Version = "1.2.0"

var flags struct {
	config  string
	store   string
	db      string
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:           "lum",
	Short:         "Lumina: habit tracker with streaks, XP and badges",
	Long:          "Lumina tracks daily habits, derives streaks from your check-ins and rewards them with XP, levels and badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Config file (default ~/.lumina/config.yaml)")
	pf.StringVar(&flags.store, "store", "", "Storage driver (sqlite|redis|postgres|memory)")
	pf.StringVar(&flags.db, "db", "", "SQLite file, or redis/postgres URL for those drivers")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newAddCmd(),
		newEditCmd(),
		newArchiveCmd(true),
		newArchiveCmd(false),
		newRmCmd(),
		newListCmd(),
		newDoCmd(),
		newJournalCmd(),
		newFocusCmd(),
		newStatusCmd(),
		newStatsCmd(),
		newCoachCmd(),
		newChatCmd(),
		newExportCmd(),
		newImportCmd(),
		newBoardCmd(),
		newConfigCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
