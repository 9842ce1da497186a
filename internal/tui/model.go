package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"questme/internal/engine"
	"questme/internal/progress"
	"questme/internal/storage"
	"questme/internal/ui"
)

type view int

const (
	viewBoard view = iota
	viewCollection
	viewBadges
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	view     view
	selected int
	themeIdx int

	modal *engine.Notification

	lastLog string
	err     error
}

type mutatedMsg struct {
	log string
	err error
}

type dismissedMsg struct{}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res := m.svc.ToggleMission(m.ctx, id)
		if res == nil {
			return mutatedMsg{log: "Mission not found."}
		}
		if res.Completed {
			return mutatedMsg{log: fmt.Sprintf("Done: +%d XP, +%d gems", res.Reward.XP, res.Reward.Gems)}
		}
		return mutatedMsg{log: "Restored to pending."}
	}
}

func (m boardModel) removeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if !m.svc.RemoveMission(m.ctx, id) {
			return mutatedMsg{log: "Mission not found."}
		}
		return mutatedMsg{log: fmt.Sprintf("Removed mission %d.", id)}
	}
}

func (m boardModel) drawCmd(themeID string) tea.Cmd {
	return func() tea.Msg {
		// A draw paid for earlier (possibly in a previous session) gets
		// revealed before any new payment.
		if m.svc.State().PendingDraw == nil {
			if err := m.svc.DrawCard(m.ctx, themeID); err != nil {
				return mutatedMsg{err: err}
			}
		}
		out, err := m.svc.RevealCard(m.ctx)
		if err != nil {
			return mutatedMsg{err: err}
		}
		tag := "duplicate"
		if out.IsNew {
			tag = "NEW"
		}
		return mutatedMsg{log: fmt.Sprintf("Drew %s [%s] (%s)", out.Card.Name, out.Card.Rarity, tag)}
	}
}

func (m boardModel) dismissCmd() tea.Cmd {
	return func() tea.Msg {
		m.svc.Dismiss(m.ctx)
		return dismissedMsg{}
	}
}

// pollQueue promotes the next queued notification into the modal, if any.
func (m *boardModel) pollQueue() {
	m.modal = m.svc.Notifier().Next()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = "Error: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		m.pollQueue()
		return m, nil
	case dismissedMsg:
		m.modal = nil
		m.pollQueue()
		return m, nil
	case tea.KeyMsg:
		if m.modal != nil {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", " ", "esc":
				return m, m.dismissCmd()
			}
			return m, nil
		}
		if m.view != viewBoard {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "b", "v":
				m.view = viewBoard
				m.svc.Notifier().Release()
				m.pollQueue()
				return m, nil
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.svc.State().Missions)-1 {
				m.selected++
			}
			return m, nil
		case "tab":
			themes := m.svc.Catalog().Themes
			m.themeIdx = (m.themeIdx + 1) % len(themes)
			return m, nil
		case "c", " ", "enter":
			ms := m.selectedMission()
			if ms == nil {
				m.lastLog = "No mission selected."
				return m, nil
			}
			return m, m.toggleCmd(ms.ID)
		case "x":
			ms := m.selectedMission()
			if ms == nil {
				m.lastLog = "No mission selected."
				return m, nil
			}
			return m, m.removeCmd(ms.ID)
		case "g":
			themes := m.svc.Catalog().Themes
			return m, m.drawCmd(themes[m.themeIdx].ID)
		case "v":
			m.view = viewCollection
			m.svc.Notifier().Hold()
			return m, nil
		case "a":
			m.view = viewBadges
			m.svc.Notifier().Hold()
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) selectedMission() *storage.Mission {
	missions := m.svc.State().Missions
	if m.selected < 0 || m.selected >= len(missions) {
		return nil
	}
	return &missions[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	var main string
	switch m.view {
	case viewCollection:
		main = m.renderCollection()
	case viewBadges:
		main = m.renderBadges()
	default:
		main = m.renderBoard()
	}
	footer := m.renderFooter()

	body := header + "\n\n" + main + footer
	if m.modal != nil {
		body += "\n\n" + m.renderModal()
	}
	return body
}

func (m boardModel) renderHeader() string {
	st := m.svc.State()
	lvl := m.svc.Level()
	bar := ui.XPBar(progress.Fraction(st.XP), 24)
	return fmt.Sprintf("QuestMe | Level %d | XP %d %s | %s %d",
		lvl, st.XP, bar, ui.IconGem, st.Gems)
}

func (m boardModel) renderBoard() string {
	st := m.svc.State()
	themes := m.svc.Catalog().Themes
	theme := themes[m.themeIdx]

	var out []string
	out = append(out, "Missions")
	if len(st.Missions) == 0 {
		out = append(out, "(empty; add one with `qm add`)")
	}
	for i, ms := range st.Missions {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		if ms.Done {
			box = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %d %s (%s)", cursor, box, ms.ID, ms.Text, ms.Difficulty))
	}
	out = append(out, "")
	out = append(out, fmt.Sprintf("Theme: %s (%s %d per draw)  [tab to cycle]", theme.Name, ui.IconGem, theme.DrawCost))
	out = append(out, "")
	out = append(out, "Keys")
	out = append(out, "- ↑/↓ or j/k: move   - c/space: toggle   - x: remove")
	out = append(out, "- g: draw card       - v: collection     - a: achievements")
	out = append(out, "- q: quit")
	return strings.Join(out, "\n")
}

func (m boardModel) renderCollection() string {
	st := m.svc.State()
	cat := m.svc.Catalog()

	var out []string
	out = append(out, fmt.Sprintf("Collection (%d/%d)  [esc to go back]", len(st.UnlockedCards), len(cat.Cards)))
	for _, theme := range cat.Themes {
		cards := cat.ThemeCards(theme.ID)
		owned := 0
		for _, c := range cards {
			if st.HasCard(c.ID) {
				owned++
			}
		}
		out = append(out, fmt.Sprintf("- %s: %d/%d", theme.Name, owned, len(cards)))
	}
	out = append(out, "")
	if len(st.UnlockedCards) == 0 {
		out = append(out, "(no cards yet; draw with g)")
	}
	for _, id := range st.UnlockedCards {
		c := cat.Card(id)
		if c == nil {
			continue
		}
		out = append(out, fmt.Sprintf("  %s %s [%s]", ui.IconCard, c.Name, c.Rarity))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderBadges() string {
	st := m.svc.State()
	var out []string
	out = append(out, fmt.Sprintf("Achievements (%d/%d)  [esc to go back]", len(st.Achieved), len(engine.Badges)))
	for _, b := range engine.Badges {
		mark := ui.IconLocked
		if st.HasBadge(b.ID) {
			mark = ui.IconTrophy
		}
		out = append(out, fmt.Sprintf("  %s %s: %s", mark, b.Name, b.Desc))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderModal() string {
	n := m.modal
	var lines []string
	switch n.Kind {
	case engine.NotifyLevelUp:
		lines = append(lines, fmt.Sprintf("%s LEVEL UP! You reached level %d.", ui.IconLevelUp, n.Level))
	case engine.NotifyAchievement:
		lines = append(lines, fmt.Sprintf("%s Achievement: %s", ui.IconTrophy, n.BadgeName))
		lines = append(lines, n.BadgeDesc)
	}
	lines = append(lines, fmt.Sprintf("Reward: +%d XP, +%d gems", n.Reward.XP, n.Reward.Gems))
	lines = append(lines, "")
	lines = append(lines, "(enter to claim)")
	return ui.ModalPanel.Render(strings.Join(lines, "\n"))
}

func (m boardModel) renderFooter() string {
	return "\n\n" + m.lastLog + timeSuffix()
}

func timeSuffix() string {
	return " " + ui.Muted.Render(time.Now().Format("15:04:05"))
}
