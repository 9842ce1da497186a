package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questme/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "qm",
	Short:         "QuestMe — gamified to-do list with card collection",
	Long:          "QuestMe is a local-first CLI/TUI to-do list where finishing missions earns XP and gems, and gems buy random collectible cards.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newRestoreCmd(),
		newRmCmd(),
		newListCmd(),
		newStatusCmd(),
		newGachaCmd(),
		newCollectionCmd(),
		newAchievementsCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
