package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questme/internal/progress"
	"questme/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := progress.ParseDifficulty(diff)
			if err != nil {
				return err
			}
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ms, err := svc.AddMission(ctx, args[0], d)
			if err != nil {
				return err
			}
			r := progress.DifficultyReward(d)
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconMission+" Added"), ms.ID, ms.Text,
				ui.Muted.Render(fmt.Sprintf("(%s: +%d XP, +%d %s on completion)", d, r.XP, r.Gems, ui.IconGem)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", "medium", "Difficulty (easy|medium|hard)")

	return cmd
}
