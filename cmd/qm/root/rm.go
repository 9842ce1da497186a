package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"questme/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a mission",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			if !svc.RemoveMission(ctx, id) {
				return fmt.Errorf("mission %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Bad.Render("✖ Removed"), id)
			return nil
		},
	}

	return cmd
}
