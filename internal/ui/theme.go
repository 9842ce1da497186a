package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"questme/internal/catalog"
)

// QuestMe theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconMission = "📝"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconGem     = "💎"
	IconCard    = "🎴"
	IconLevelUp = "🎉"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLocked  = "🔒"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cCyan    = lipgloss.Color("51")  // cyan
	cPurple  = lipgloss.Color("129") // purple
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	ModalPanel  = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(cGold).Padding(1, 2)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

var (
	rarityCommon    = lipgloss.NewStyle().Foreground(cMuted)
	rarityRare      = lipgloss.NewStyle().Bold(true).Foreground(cCyan)
	rarityEpic      = lipgloss.NewStyle().Bold(true).Foreground(cPurple)
	rarityLegendary = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

// RarityText renders a rarity tier in its tier color.
func RarityText(r catalog.Rarity) string {
	switch r {
	case catalog.RarityRare:
		return rarityRare.Render("RARE")
	case catalog.RarityEpic:
		return rarityEpic.Render("EPIC")
	case catalog.RarityLegendary:
		return rarityLegendary.Render("LEGENDARY")
	default:
		return rarityCommon.Render("COMMON")
	}
}

// XPBar renders a fixed-width progress bar for the current level.
func XPBar(fraction float64, width int) string {
	if width < 2 {
		width = 10
	}
	if fraction < 0 {
		fraction = 0
	}
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

func DifficultyText(name string) string {
	switch name {
	case "easy":
		return Good.Render("easy")
	case "medium":
		return Warn.Render("medium")
	case "hard":
		return Bad.Render("hard")
	default:
		return Muted.Render(name)
	}
}
