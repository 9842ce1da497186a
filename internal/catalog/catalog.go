package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var embedded []byte

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// Rarities lists the tiers from most to least common.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Theme is a named partition of the card pool with its own draw cost.
type Theme struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	AssetDir string `yaml:"asset_dir"`
	Cover    string `yaml:"cover"`
	DrawCost int    `yaml:"draw_cost"`
}

// Card is one collectible entry. Asset is an opaque locator resolved by
// the presentation layer.
type Card struct {
	ID      string `yaml:"id"`
	ThemeID string `yaml:"theme"`
	Name    string `yaml:"name"`
	Asset   string `yaml:"asset"`
	Rarity  Rarity `yaml:"rarity"`
}

// Catalog is the read-only card/theme reference table, indexed once at
// load time.
type Catalog struct {
	Themes []Theme
	Cards  []Card

	themeByID    map[string]*Theme
	cardByID     map[string]*Card
	cardsByTheme map[string][]Card
}

type rawCatalog struct {
	Themes []Theme `yaml:"themes"`
	Cards  []Card  `yaml:"cards"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return decode(embedded)
}

// LoadFile decodes a catalog from an external YAML file, for overriding
// the built-in card set.
func LoadFile(filename string) (*Catalog, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decode(b)
}

func decode(b []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		Themes:       raw.Themes,
		Cards:        raw.Cards,
		themeByID:    make(map[string]*Theme, len(raw.Themes)),
		cardByID:     make(map[string]*Card, len(raw.Cards)),
		cardsByTheme: make(map[string][]Card, len(raw.Themes)),
	}
	for i := range c.Themes {
		c.themeByID[c.Themes[i].ID] = &c.Themes[i]
	}
	for i := range c.Cards {
		card := &c.Cards[i]
		c.cardByID[card.ID] = card
		c.cardsByTheme[card.ThemeID] = append(c.cardsByTheme[card.ThemeID], *card)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.Themes) == 0 {
		return fmt.Errorf("catalog: no themes")
	}
	seenThemes := make(map[string]bool, len(c.Themes))
	for _, t := range c.Themes {
		if t.ID == "" {
			return fmt.Errorf("catalog: theme with empty id")
		}
		if seenThemes[t.ID] {
			return fmt.Errorf("catalog: duplicate theme %q", t.ID)
		}
		seenThemes[t.ID] = true
		if t.DrawCost <= 0 {
			return fmt.Errorf("catalog: theme %q has non-positive draw cost %d", t.ID, t.DrawCost)
		}
		if len(c.cardsByTheme[t.ID]) == 0 {
			return fmt.Errorf("catalog: theme %q has no cards", t.ID)
		}
	}
	seenCards := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		if card.ID == "" {
			return fmt.Errorf("catalog: card with empty id")
		}
		if seenCards[card.ID] {
			return fmt.Errorf("catalog: duplicate card %q", card.ID)
		}
		seenCards[card.ID] = true
		if !seenThemes[card.ThemeID] {
			return fmt.Errorf("catalog: card %q references unknown theme %q", card.ID, card.ThemeID)
		}
		if !card.Rarity.IsValid() {
			return fmt.Errorf("catalog: card %q has unknown rarity %q", card.ID, card.Rarity)
		}
	}
	return nil
}

// Theme returns the theme with the given id, or nil.
func (c *Catalog) Theme(id string) *Theme {
	return c.themeByID[id]
}

// Card returns the card with the given id, or nil.
func (c *Catalog) Card(id string) *Card {
	return c.cardByID[id]
}

// ThemeCards returns the cards belonging to a theme, in catalog order.
func (c *Catalog) ThemeCards(themeID string) []Card {
	return c.cardsByTheme[themeID]
}

// ThemeCardsByRarity filters a theme's cards to one rarity tier.
func (c *Catalog) ThemeCardsByRarity(themeID string, r Rarity) []Card {
	var out []Card
	for _, card := range c.cardsByTheme[themeID] {
		if card.Rarity == r {
			out = append(out, card)
		}
	}
	return out
}

// AssetPath joins a card's opaque asset code with its theme's asset
// directory. Extension resolution stays with the presentation layer.
func (c *Catalog) AssetPath(card *Card) string {
	t := c.themeByID[card.ThemeID]
	if t == nil {
		return card.Asset
	}
	return path.Join(t.AssetDir, card.Asset)
}
