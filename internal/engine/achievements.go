package engine

import (
	"context"

	"questme/internal/progress"
	"questme/internal/storage"
)

// BadgeDef is one achievement: a predicate over the player state and the
// reward granted when the notification for it is dismissed.
type BadgeDef struct {
	ID        string
	Name      string
	Desc      string
	Reward    progress.Reward
	Qualified func(*storage.PlayerState) bool
}

// Badges is the fixed achievement registry. Evaluation follows this
// order, so notification order for simultaneously qualified badges is
// stable.
var Badges = []BadgeDef{
	// Mission progress
	{
		ID: "first", Name: "First Step", Desc: "Complete 1 mission.",
		Reward:    progress.Reward{Gems: 3},
		Qualified: func(s *storage.PlayerState) bool { return s.DoneCount(0) >= 1 },
	},
	{
		ID: "five", Name: "Persistent", Desc: "Complete 5 missions.",
		Reward:    progress.Reward{Gems: 10, XP: 50},
		Qualified: func(s *storage.PlayerState) bool { return s.DoneCount(0) >= 5 },
	},
	{
		ID: "twenty", Name: "Routine Master", Desc: "Complete 20 missions.",
		Reward:    progress.Reward{Gems: 25, XP: 200},
		Qualified: func(s *storage.PlayerState) bool { return s.DoneCount(0) >= 20 },
	},
	{
		ID: "fifty", Name: "Unstoppable", Desc: "Complete 50 missions.",
		Reward:    progress.Reward{Gems: 50, XP: 500},
		Qualified: func(s *storage.PlayerState) bool { return s.DoneCount(0) >= 50 },
	},

	// Gacha and collection
	{
		ID: "gacha_first", Name: "First Pull", Desc: "Unlock 1 card.",
		Reward:    progress.Reward{Gems: 5, XP: 50},
		Qualified: func(s *storage.PlayerState) bool { return len(s.UnlockedCards) >= 1 },
	},
	{
		ID: "gacha_ten", Name: "Novice Collector", Desc: "Unlock 10 cards.",
		Reward:    progress.Reward{Gems: 15, XP: 100},
		Qualified: func(s *storage.PlayerState) bool { return len(s.UnlockedCards) >= 10 },
	},
	{
		ID: "gacha_half", Name: "Half the Deck", Desc: "Unlock 20 cards.",
		Reward:    progress.Reward{Gems: 30, XP: 300},
		Qualified: func(s *storage.PlayerState) bool { return len(s.UnlockedCards) >= 20 },
	},

	// Level milestones
	{
		ID: "lvl_5", Name: "Ascension", Desc: "Reach level 5.",
		Reward:    progress.Reward{Gems: 20},
		Qualified: func(s *storage.PlayerState) bool { return progress.LevelForXP(s.XP) >= 5 },
	},
	{
		ID: "lvl_10", Name: "Veteran", Desc: "Reach level 10.",
		Reward:    progress.Reward{Gems: 40},
		Qualified: func(s *storage.PlayerState) bool { return progress.LevelForXP(s.XP) >= 10 },
	},

	// Economy
	{
		ID: "gem_hoarder", Name: "Gem Hoarder", Desc: "Hold 50 gems at once.",
		Reward:    progress.Reward{Gems: 10, XP: 50},
		Qualified: func(s *storage.PlayerState) bool { return s.Gems >= 50 },
	},
	{
		ID: "gem_rich", Name: "Gacha Magnate", Desc: "Hold 100 gems at once.",
		Reward:    progress.Reward{Gems: 25, XP: 100},
		Qualified: func(s *storage.PlayerState) bool { return s.Gems >= 100 },
	},

	// Challenge
	{
		ID: "hard_five", Name: "Challenge Breaker", Desc: "Complete 5 hard missions.",
		Reward:    progress.Reward{Gems: 20, XP: 150},
		Qualified: func(s *storage.PlayerState) bool { return s.DoneCount(progress.DifficultyHard) >= 5 },
	},
}

// BadgeByID returns the registry entry for an id, or nil.
func BadgeByID(id string) *BadgeDef {
	for i := range Badges {
		if Badges[i].ID == id {
			return &Badges[i]
		}
	}
	return nil
}

// EvaluateAchievements scans the registry and records every newly
// qualified badge. Recording happens now (so re-evaluation is
// idempotent); the reward rides on the queued notification and is only
// credited on dismissal.
func (s *Service) EvaluateAchievements(ctx context.Context) []string {
	var earned []string
	for i := range Badges {
		b := &Badges[i]
		if s.state.HasBadge(b.ID) || !b.Qualified(s.state) {
			continue
		}
		s.state.Achieved = append(s.state.Achieved, b.ID)
		s.save(ctx)
		earned = append(earned, b.ID)

		s.notify.Enqueue(&Notification{
			Kind:      NotifyAchievement,
			BadgeID:   b.ID,
			BadgeName: b.Name,
			BadgeDesc: b.Desc,
			Reward:    b.Reward,
		})
	}
	return earned
}
