package storage

import (
	"time"

	"questme/internal/progress"
)

// Mission is a user-created to-do item. Difficulty is fixed at creation.
type Mission struct {
	ID         int64               `json:"id"`
	Text       string              `json:"text"`
	Difficulty progress.Difficulty `json:"diff"`
	Done       bool                `json:"done"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// PendingDraw records a paid gacha draw that has not been revealed yet,
// so the spent cost survives the session ending between draw and reveal.
type PendingDraw struct {
	ThemeID string `json:"themeId"`
	Cost    int    `json:"cost"`
}

// PlayerState is the single mutable aggregate. It is persisted whole
// after every mutation.
type PlayerState struct {
	XP            int          `json:"xp"`
	Gems          int          `json:"gems"`
	Missions      []Mission    `json:"missions"`
	UnlockedCards []string     `json:"cards"`
	Achieved      []string     `json:"achieved"`
	NextMissionID int64        `json:"nextMissionId"`
	PendingDraw   *PendingDraw `json:"pendingDraw,omitempty"`
}

// DefaultState returns a fresh state, seeded with two demo missions so a
// first run has something to complete.
func DefaultState() *PlayerState {
	now := time.Now().UTC()
	return &PlayerState{
		Missions: []Mission{
			{ID: 1, Text: "25 minute focus session (demo)", Difficulty: progress.DifficultyMedium, CreatedAt: now},
			{ID: 2, Text: "Drink 2L of water (demo)", Difficulty: progress.DifficultyEasy, CreatedAt: now},
		},
		NextMissionID: 3,
	}
}

// HasCard reports whether the card id is in the unlocked set.
func (s *PlayerState) HasCard(id string) bool {
	for _, c := range s.UnlockedCards {
		if c == id {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge id has been achieved.
func (s *PlayerState) HasBadge(id string) bool {
	for _, b := range s.Achieved {
		if b == id {
			return true
		}
	}
	return false
}

// Mission returns the mission with the given id, or nil.
func (s *PlayerState) Mission(id int64) *Mission {
	for i := range s.Missions {
		if s.Missions[i].ID == id {
			return &s.Missions[i]
		}
	}
	return nil
}

// DoneCount counts completed missions, optionally restricted to one
// difficulty (pass 0 for all).
func (s *PlayerState) DoneCount(diff progress.Difficulty) int {
	n := 0
	for i := range s.Missions {
		if !s.Missions[i].Done {
			continue
		}
		if diff != 0 && s.Missions[i].Difficulty != diff {
			continue
		}
		n++
	}
	return n
}
