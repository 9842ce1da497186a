package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"questme/internal/engine"
	"questme/internal/progress"
	"questme/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, gems and collection progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := svc.State()
			lvl := svc.Level()
			nextReq := progress.XPRequiredForLevel(lvl + 1)
			toNext := nextReq - st.XP
			if toNext < 0 {
				toNext = 0
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", lvl))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s (next at %d, %d to go)", st.XP, ui.XPBar(progress.Fraction(st.XP), 24), nextReq, toNext)))
			fmt.Fprintln(out, ui.LabelValue("Gems", fmt.Sprintf("%d %s", st.Gems, ui.IconGem)))
			fmt.Fprintln(out, "")

			pending := 0
			for _, m := range st.Missions {
				if !m.Done {
					pending++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconMission+" Missions"))
			fmt.Fprintf(out, "- pending: %d, done: %d\n", pending, st.DoneCount(0))
			fmt.Fprintln(out, "")

			cat := svc.Catalog()
			fmt.Fprintln(out, ui.H2.Render(ui.IconCard+" Collection"))
			fmt.Fprintf(out, "- cards: %d/%d\n", len(st.UnlockedCards), len(cat.Cards))
			fmt.Fprintf(out, "- achievements: %d/%d\n", len(st.Achieved), len(engine.Badges))
			if st.PendingDraw != nil {
				fmt.Fprintf(out, "- %s\n", ui.Warn.Render(fmt.Sprintf("a paid draw from %q is waiting; run `qm gacha reveal`", st.PendingDraw.ThemeID)))
			}
			return nil
		},
	}

	return cmd
}
