package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questme/internal/engine"
	"questme/internal/ui"
)

func newGachaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gacha",
		Short: "Spend gems on random collectible cards",
		RunE:  runGachaThemes,
	}
	cmd.AddCommand(newGachaDrawCmd(), newGachaRevealCmd(), newGachaThemesCmd())
	return cmd
}

func newGachaDrawCmd() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "draw <theme>",
		Short: "Pay a theme's draw cost (reveal with `qm gacha reveal`)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme id is required (see `qm gacha themes`)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DrawCard(ctx, args[0]); err != nil {
				var short engine.InsufficientGemsError
				if errors.As(err, &short) {
					return fmt.Errorf("%w (earn more by completing missions)", err)
				}
				return err
			}
			theme := svc.Catalog().Theme(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s paid %d %s for a %s draw\n",
				ui.Good.Render(ui.IconCard+" Draw"), theme.DrawCost, ui.IconGem, theme.Name)

			if !reveal {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("run `qm gacha reveal` to flip the card"))
				return nil
			}
			return revealCard(ctx, cmd, svc, cfg.AutoDismiss)
		},
	}

	cmd.Flags().BoolVarP(&reveal, "reveal", "r", false, "Reveal immediately after paying")

	return cmd
}

func newGachaRevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Flip the card from a pending draw",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return revealCard(ctx, cmd, svc, cfg.AutoDismiss)
		},
	}

	return cmd
}

func revealCard(ctx context.Context, cmd *cobra.Command, svc *engine.Service, autoDismiss bool) error {
	out, err := svc.RevealCard(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s [%s]\n", ui.IconCard, ui.Title.Render(out.Card.Name), ui.RarityText(out.Card.Rarity))
	if out.IsNew {
		fmt.Fprintf(w, "%s +%d XP\n", ui.Good.Render(ui.IconSparkle+" New card!"), out.Reward.XP)
	} else {
		fmt.Fprintf(w, "%s +%d %s back, +%d XP\n", ui.Warn.Render("Duplicate."), out.Reward.Gems, ui.IconGem, out.Reward.XP)
	}

	drainNotifications(ctx, cmd, svc, autoDismiss)
	return nil
}

func newGachaThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List card themes and draw costs",
		RunE:  runGachaThemes,
	}

	return cmd
}

func runGachaThemes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, _, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	w := cmd.OutOrStdout()
	st := svc.State()
	cat := svc.Catalog()
	fmt.Fprintln(w, ui.Heading(ui.IconCard, "Themes"))
	for _, t := range cat.Themes {
		cards := cat.ThemeCards(t.ID)
		owned := 0
		for _, c := range cards {
			if st.HasCard(c.ID) {
				owned++
			}
		}
		fmt.Fprintf(w, "- %s %s  %d %s per draw, %d/%d collected\n",
			ui.Key.Render(t.ID), ui.Muted.Render("("+t.Name+")"), t.DrawCost, ui.IconGem, owned, len(cards))
	}
	fmt.Fprintf(w, "\n%s %d %s\n", ui.Key.Render("Balance:"), st.Gems, ui.IconGem)
	return nil
}
