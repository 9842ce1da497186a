package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"questme/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			missions := svc.State().Missions
			fmt.Fprintln(out, ui.Heading(ui.IconMission, "Missions"))
			shown := 0
			for _, m := range missions {
				if m.Done && !all {
					continue
				}
				box := "[ ]"
				if m.Done {
					box = "[x]"
				}
				fmt.Fprintf(out, "%s #%d %s (%s)\n", box, m.ID, m.Text, ui.DifficultyText(m.Difficulty.String()))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing to do; add a mission with `qm add`)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed missions")

	return cmd
}
