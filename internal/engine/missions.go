package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"questme/internal/progress"
	"questme/internal/storage"
)

// AddMission creates a mission at the tail of the list. Empty text is
// rejected; difficulty is fixed for the mission's lifetime.
func (s *Service) AddMission(ctx context.Context, text string, diff progress.Difficulty) (*storage.Mission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("mission text is required")
	}

	m := storage.Mission{
		ID:         s.state.NextMissionID,
		Text:       text,
		Difficulty: diff,
		CreatedAt:  time.Now().UTC(),
	}
	s.state.NextMissionID++
	s.state.Missions = append(s.state.Missions, m)
	s.save(ctx)

	s.log.Debug("mission added", "id", m.ID, "difficulty", diff.String())
	return s.state.Mission(m.ID), nil
}

// ToggleResult reports what a toggle did. The difficulty reward, unlike
// level-up and achievement rewards, is credited immediately.
type ToggleResult struct {
	Mission   *storage.Mission
	Completed bool
	Reward    progress.Reward
	NewBadges []string
}

// ToggleMission flips a mission's completion state. Completing grants
// the difficulty reward instantly and cascades achievement and level-up
// checks; un-completing applies no penalty, and re-completing re-grants
// the reward. An unknown id is a no-op returning nil.
func (s *Service) ToggleMission(ctx context.Context, id int64) *ToggleResult {
	m := s.state.Mission(id)
	if m == nil {
		s.log.Debug("toggle for unknown mission", "id", id)
		return nil
	}

	m.Done = !m.Done
	res := &ToggleResult{Mission: m, Completed: m.Done}

	if m.Done {
		res.Reward = progress.DifficultyReward(m.Difficulty)
		s.state.XP += res.Reward.XP
		s.state.Gems += res.Reward.Gems

		res.NewBadges = s.EvaluateAchievements(ctx)
		s.detectLevelUp()
	}

	s.save(ctx)
	return res
}

// RemoveMission deletes a mission. Unknown ids are a silent no-op.
func (s *Service) RemoveMission(ctx context.Context, id int64) bool {
	for i := range s.state.Missions {
		if s.state.Missions[i].ID != id {
			continue
		}
		s.state.Missions = append(s.state.Missions[:i], s.state.Missions[i+1:]...)
		s.save(ctx)
		return true
	}
	return false
}
