package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"questme/internal/catalog"
	"questme/internal/storage"
	"questme/internal/ui"
)

func newCollectionCmd() *cobra.Command {
	var showLocked bool

	cmd := &cobra.Command{
		Use:   "collection [theme-or-card]",
		Short: "Browse unlocked cards",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one theme or card id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			st := svc.State()
			cat := svc.Catalog()

			themes := cat.Themes
			if len(args) == 1 {
				t := cat.Theme(args[0])
				if t == nil {
					if c := cat.Card(args[0]); c != nil {
						printCard(w, st, cat, c)
						return nil
					}
					return fmt.Errorf("unknown theme or card %q", args[0])
				}
				themes = []catalog.Theme{*t}
			}

			fmt.Fprintln(w, ui.Heading(ui.IconCard, fmt.Sprintf("Collection (%d/%d)", len(st.UnlockedCards), len(cat.Cards))))
			for _, t := range themes {
				cards := cat.ThemeCards(t.ID)
				owned := 0
				for _, c := range cards {
					if st.HasCard(c.ID) {
						owned++
					}
				}
				fmt.Fprintf(w, "\n%s\n", ui.H2.Render(fmt.Sprintf("%s (%d/%d)", t.Name, owned, len(cards))))
				for _, c := range cards {
					switch {
					case st.HasCard(c.ID):
						fmt.Fprintf(w, "  %s %s [%s]\n", ui.IconCard, c.Name, ui.RarityText(c.Rarity))
					case showLocked:
						fmt.Fprintf(w, "  %s %s\n", ui.IconLocked, ui.Muted.Render(c.Name))
					}
				}
				if owned == 0 && !showLocked {
					fmt.Fprintln(w, ui.Muted.Render("  (no cards yet)"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showLocked, "locked", "l", false, "Also show cards not yet unlocked")

	return cmd
}

func printCard(w io.Writer, st *storage.PlayerState, cat *catalog.Catalog, c *catalog.Card) {
	theme := cat.Theme(c.ThemeID)
	fmt.Fprintf(w, "%s %s [%s]\n", ui.IconCard, ui.Title.Render(c.Name), ui.RarityText(c.Rarity))
	fmt.Fprintln(w, ui.LabelValue("Theme", theme.Name))
	fmt.Fprintln(w, ui.LabelValue("Asset", cat.AssetPath(c)))
	if st.HasCard(c.ID) {
		fmt.Fprintln(w, ui.Good.Render(ui.IconDone+" unlocked"))
	} else {
		fmt.Fprintln(w, ui.Muted.Render(ui.IconLocked+" not unlocked yet"))
	}
}
