package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"questme/internal/ui"
)

func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a mission",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res := svc.ToggleMission(ctx, id)
			if res == nil {
				return fmt.Errorf("mission %d not found", id)
			}
			if !res.Completed {
				// Toggled an already-done mission back to pending.
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Warn.Render("↩ Restored"), res.Mission.ID, res.Mission.Text)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconDone+" Done"), res.Mission.ID, res.Mission.Text,
				ui.Muted.Render(fmt.Sprintf("(+%d XP, +%d %s)", res.Reward.XP, res.Reward.Gems, ui.IconGem)))

			drainNotifications(ctx, cmd, svc, cfg.AutoDismiss)
			return nil
		},
	}

	return cmd
}
