package engine

import (
	"context"
	"log/slog"
	"time"

	"questme/internal/catalog"
	"questme/internal/gacha"
	"questme/internal/progress"
	"questme/internal/storage"
)

// Service owns the player state and orchestrates missions, rewards,
// achievements and the notification queue. Single-threaded by design:
// every mutation happens on a user-triggered call.
type Service struct {
	store  *storage.Store
	cat    *catalog.Catalog
	draws  *gacha.Engine
	notify *Notifier
	log    *slog.Logger

	state *storage.PlayerState
}

func NewService(store *storage.Store, cat *catalog.Catalog, rng gacha.RandomSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		cat:    cat,
		draws:  gacha.NewEngine(cat, rng),
		notify: NewNotifier(logger),
		log:    logger,
	}
}

// Load reads the persisted state and primes level-up detection with the
// current level, so pre-existing XP is never re-announced.
func (s *Service) Load(ctx context.Context) error {
	st, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.state = st
	s.notify.cachedLevel = progress.LevelForXP(st.XP)
	return s.store.Save(ctx, st)
}

func (s *Service) State() *storage.PlayerState { return s.state }
func (s *Service) Catalog() *catalog.Catalog   { return s.cat }
func (s *Service) Notifier() *Notifier         { return s.notify }

// Level returns the level derived from current XP.
func (s *Service) Level() int { return progress.LevelForXP(s.state.XP) }

// save persists the state, fire-and-forget: a failed write is logged and
// the in-memory state stays authoritative.
func (s *Service) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.state); err != nil {
		s.log.Warn("state save failed", "error", err)
	}
}

// detectLevelUp enqueues a level-up notification when XP has crossed a
// threshold above the last announced level. The announcement is eager
// (cachedLevel advances now) while the reward stays deferred until the
// notification is dismissed.
func (s *Service) detectLevelUp() {
	newLevel := progress.LevelForXP(s.state.XP)
	if newLevel <= s.notify.cachedLevel {
		return
	}
	reward := progress.LevelReward(newLevel)
	s.notify.cachedLevel = newLevel
	s.notify.Enqueue(&Notification{
		Kind:   NotifyLevelUp,
		Level:  newLevel,
		Reward: reward,
	})
}

// Dismiss finishes the visible notification: the frozen reward is
// applied exactly once, state is persisted, level-up detection re-runs
// (a reward can cross another threshold), and the modal frees up for the
// next queued item.
func (s *Service) Dismiss(ctx context.Context) {
	note := s.notify.visible
	if note == nil {
		return
	}
	if s.notify.delay > 0 {
		time.Sleep(s.notify.delay)
	}
	s.applyReward(note)
	s.save(ctx)
	s.detectLevelUp()
	s.notify.visible = nil
}

// applyReward credits a notification's reward, at most once per
// notification instance.
func (s *Service) applyReward(note *Notification) {
	if note.rewardApplied {
		s.log.Debug("reward already applied, skipping", "kind", note.Kind.String())
		return
	}
	note.rewardApplied = true
	s.state.Gems += note.Reward.Gems
	s.state.XP += note.Reward.XP
	s.log.Debug("reward applied",
		"kind", note.Kind.String(),
		"gems", note.Reward.Gems,
		"xp", note.Reward.XP)
}
