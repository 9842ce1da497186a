package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"questme/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Mark a completed mission as pending again",
		Long: `Restore a mission to pending status.

The XP and gems earned when it was completed are kept. Completing it
again grants the difficulty reward again.`,
		Args: idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			m := svc.State().Mission(id)
			if m == nil {
				return fmt.Errorf("mission %d not found", id)
			}
			if !m.Done {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d is already pending\n", ui.Muted.Render(ui.IconInfo), id)
				return nil
			}
			res := svc.ToggleMission(ctx, id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Warn.Render("↩ Restored"), res.Mission.ID, res.Mission.Text)
			return nil
		},
	}

	return cmd
}
