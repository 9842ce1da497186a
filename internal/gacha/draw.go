package gacha

import (
	"fmt"

	"questme/internal/catalog"
	"questme/internal/progress"
)

// NewUnlockXP is the flat XP granted when a draw reveals a card the
// player does not own yet.
const NewUnlockXP = 50

// DuplicateXP is the consolation XP when a draw reveals an owned card;
// the draw cost is refunded alongside it.
const DuplicateXP = 10

// Engine performs weighted-random card selection within a theme. It only
// computes outcomes; crediting and debiting stay with the caller.
type Engine struct {
	catalog *catalog.Catalog
	rng     RandomSource
}

func NewEngine(cat *catalog.Catalog, rng RandomSource) *Engine {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Engine{catalog: cat, rng: rng}
}

// RarityForRoll maps a roll in [0,100) to a rarity tier. The bands are
// common for r <= 60, rare for 60 < r <= 90, epic for 90 < r <= 99 and
// legendary above, reproducing the original boundary comparisons.
func RarityForRoll(r float64) catalog.Rarity {
	switch {
	case r > 99:
		return catalog.RarityLegendary
	case r > 90:
		return catalog.RarityEpic
	case r > 60:
		return catalog.RarityRare
	default:
		return catalog.RarityCommon
	}
}

// Pick rolls a rarity tier and selects a card uniformly within the
// theme's partition for that tier. A tier with no cards in the theme
// falls back to a uniform pick over the whole theme pool.
func (e *Engine) Pick(themeID string) (*catalog.Card, error) {
	pool := e.catalog.ThemeCards(themeID)
	if len(pool) == 0 {
		return nil, fmt.Errorf("gacha: unknown theme %q", themeID)
	}

	rarity := RarityForRoll(e.rng.Float64() * 100)
	byRarity := e.catalog.ThemeCardsByRarity(themeID, rarity)
	if len(byRarity) > 0 {
		pool = byRarity
	}
	c := pool[int(e.rng.Float64()*float64(len(pool)))]
	return &c, nil
}

// Outcome is the result of revealing a draw.
type Outcome struct {
	Card   *catalog.Card
	IsNew  bool
	Reward progress.Reward
}

// Resolve computes the reveal outcome for a picked card: new unlocks
// grant flat XP, duplicates refund the draw cost plus consolation XP.
func Resolve(card *catalog.Card, owned bool, drawCost int) Outcome {
	if owned {
		return Outcome{Card: card, IsNew: false, Reward: progress.Reward{XP: DuplicateXP, Gems: drawCost}}
	}
	return Outcome{Card: card, IsNew: true, Reward: progress.Reward{XP: NewUnlockXP}}
}
