package root

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"questme/internal/engine"
	"questme/internal/ui"
)

// drainNotifications walks the pending announcement queue one entry at a
// time. Each reward is only credited on dismissal, and a dismissal can
// queue a follow-up level up, so this loops until the queue is empty.
func drainNotifications(ctx context.Context, cmd *cobra.Command, svc *engine.Service, autoDismiss bool) {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	for {
		note := svc.Notifier().Next()
		if note == nil {
			return
		}
		switch note.Kind {
		case engine.NotifyLevelUp:
			fmt.Fprintf(out, "\n%s\n", ui.Gold.Render(fmt.Sprintf("%s LEVEL UP! You reached level %d.", ui.IconLevelUp, note.Level)))
		case engine.NotifyAchievement:
			fmt.Fprintf(out, "\n%s\n", ui.Gold.Render(fmt.Sprintf("%s Achievement unlocked: %s", ui.IconTrophy, note.BadgeName)))
			fmt.Fprintf(out, "%s\n", ui.Muted.Render(note.BadgeDesc))
		}
		fmt.Fprintf(out, "%s\n", ui.LabelValue("Reward", fmt.Sprintf("+%d XP, +%d %s", note.Reward.XP, note.Reward.Gems, ui.IconGem)))

		if !autoDismiss {
			fmt.Fprint(out, ui.Muted.Render("(press enter to claim) "))
			_, _ = in.ReadString('\n')
		}
		svc.Dismiss(ctx)
	}
}
