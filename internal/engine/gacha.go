package engine

import (
	"context"
	"fmt"

	"questme/internal/gacha"
	"questme/internal/storage"
)

// DrawCard pays for a draw. The cost is debited at commitment time and
// the paid draw persists until revealed, so ending the session between
// draw and reveal cannot lose the payment.
func (s *Service) DrawCard(ctx context.Context, themeID string) error {
	theme := s.cat.Theme(themeID)
	if theme == nil {
		return fmt.Errorf("unknown theme %q", themeID)
	}
	if s.state.PendingDraw != nil {
		return fmt.Errorf("a %s draw is already waiting to be revealed", s.state.PendingDraw.ThemeID)
	}
	if s.state.Gems < theme.DrawCost {
		return InsufficientGemsError{Cost: theme.DrawCost, Balance: s.state.Gems}
	}

	s.state.Gems -= theme.DrawCost
	s.state.PendingDraw = &storage.PendingDraw{ThemeID: themeID, Cost: theme.DrawCost}
	s.save(ctx)

	s.log.Debug("draw paid", "theme", themeID, "cost", theme.DrawCost)
	return nil
}

// RevealCard resolves the pending draw: picks a card, records a new
// unlock (or refunds a duplicate), and cascades level-up and achievement
// checks.
func (s *Service) RevealCard(ctx context.Context) (*gacha.Outcome, error) {
	pd := s.state.PendingDraw
	if pd == nil {
		return nil, fmt.Errorf("no draw waiting to be revealed")
	}

	card, err := s.draws.Pick(pd.ThemeID)
	if err != nil {
		return nil, err
	}

	out := gacha.Resolve(card, s.state.HasCard(card.ID), pd.Cost)
	if out.IsNew {
		s.state.UnlockedCards = append(s.state.UnlockedCards, card.ID)
	}
	s.state.XP += out.Reward.XP
	s.state.Gems += out.Reward.Gems
	s.state.PendingDraw = nil
	s.save(ctx)

	s.log.Debug("draw revealed", "card", card.ID, "new", out.IsNew)

	s.detectLevelUp()
	s.EvaluateAchievements(ctx)
	return &out, nil
}
