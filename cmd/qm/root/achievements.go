package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"questme/internal/engine"
	"questme/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"badges"},
		Short:   "List achievements and their rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			st := svc.State()
			fmt.Fprintln(w, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", len(st.Achieved), len(engine.Badges))))
			for _, b := range engine.Badges {
				if st.HasBadge(b.ID) {
					fmt.Fprintf(w, "%s %s %s\n", ui.IconTrophy, ui.Good.Render(b.Name), ui.Muted.Render(b.Desc))
					continue
				}
				fmt.Fprintf(w, "%s %s %s\n", ui.IconLocked, ui.Muted.Render(b.Name),
					ui.Muted.Render(fmt.Sprintf("%s (+%d XP, +%d %s)", b.Desc, b.Reward.XP, b.Reward.Gems, ui.IconGem)))
			}
			return nil
		},
	}

	return cmd
}
