package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"questme/internal/catalog"
	"questme/internal/gacha"
	"questme/internal/progress"
	"questme/internal/storage"
)

// scriptRNG replays fixed rolls so draws can be rigged.
type scriptRNG struct {
	vals []float64
	i    int
}

func (s *scriptRNG) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func newTestService(t *testing.T, rng gacha.RandomSource) *Service {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	svc := NewService(storage.NewStore(db, nil), cat, rng, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load service: %v", err)
	}
	return svc
}

func TestLevelUpDeferredReward(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	svc.State().XP = 100
	svc.detectLevelUp()

	if svc.Notifier().Pending() != 1 {
		t.Fatalf("pending=%d, want 1", svc.Notifier().Pending())
	}
	note := svc.Notifier().Next()
	if note == nil || note.Kind != NotifyLevelUp || note.Level != 2 {
		t.Fatalf("visible notification = %+v", note)
	}
	if note.Reward.Gems != 10 || note.Reward.XP != 100 {
		t.Fatalf("level 2 reward = %+v, want gems=10 xp=100", note.Reward)
	}

	// Detection does not credit anything.
	if svc.State().Gems != 0 || svc.State().XP != 100 {
		t.Fatalf("reward applied before dismissal: gems=%d xp=%d", svc.State().Gems, svc.State().XP)
	}

	svc.Dismiss(ctx)
	if svc.State().Gems != 10 {
		t.Fatalf("gems=%d after dismissal, want 10", svc.State().Gems)
	}
	if svc.State().XP != 200 {
		t.Fatalf("xp=%d after dismissal, want 200", svc.State().XP)
	}
}

func TestDismissalAppliesRewardExactlyOnce(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	svc.State().XP = 100
	svc.detectLevelUp()
	note := svc.Notifier().Next()
	svc.Dismiss(ctx)

	gems, xp := svc.State().Gems, svc.State().XP

	// Simulate the dismissal handler firing again for the same instance.
	svc.applyReward(note)
	if svc.State().Gems != gems || svc.State().XP != xp {
		t.Fatalf("double application changed state: gems %d->%d, xp %d->%d",
			gems, svc.State().Gems, xp, svc.State().XP)
	}
}

func TestQueueIsFIFO(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	n := svc.Notifier()

	a := &Notification{Kind: NotifyLevelUp, Level: 2}
	b := &Notification{Kind: NotifyAchievement, BadgeID: "first"}
	n.Enqueue(a)
	n.Enqueue(b)

	if got := n.Next(); got != a {
		t.Fatalf("first visible = %+v, want a", got)
	}
	// While a is visible nothing else is admitted.
	if got := n.Next(); got != nil {
		t.Fatalf("admitted %+v while modal open", got)
	}

	// Enqueues during visibility append to the tail.
	c := &Notification{Kind: NotifyLevelUp, Level: 3}
	n.Enqueue(c)

	svc.Dismiss(ctx)
	if got := n.Next(); got != b {
		t.Fatalf("second visible = %+v, want b", got)
	}
	svc.Dismiss(ctx)
	if got := n.Next(); got != c {
		t.Fatalf("third visible = %+v, want c", got)
	}
}

func TestNavigationalViewHoldsQueue(t *testing.T) {
	svc := newTestService(t, nil)
	n := svc.Notifier()

	n.Enqueue(&Notification{Kind: NotifyLevelUp, Level: 2})
	n.Hold()
	if got := n.Next(); got != nil {
		t.Fatalf("held notifier admitted %+v", got)
	}
	n.Release()
	if got := n.Next(); got == nil {
		t.Fatalf("released notifier admitted nothing")
	}
}

func TestDismissalCanCascadeAnotherLevelUp(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	svc.State().XP = 100
	svc.detectLevelUp()
	svc.Notifier().Next()
	// The +100 XP bonus moves total XP to 200, which is level 3.
	svc.Dismiss(ctx)

	note := svc.Notifier().Next()
	if note == nil || note.Kind != NotifyLevelUp || note.Level != 3 {
		t.Fatalf("cascaded notification = %+v, want level 3", note)
	}
}

func TestNoDuplicateAnnouncementBeforeDismissal(t *testing.T) {
	svc := newTestService(t, nil)

	svc.State().XP = 100
	svc.detectLevelUp()
	// XP rises again before the first notification is dismissed; the
	// same level must not re-queue and only strictly higher levels do.
	svc.detectLevelUp()
	if svc.Notifier().Pending() != 1 {
		t.Fatalf("pending=%d, want 1", svc.Notifier().Pending())
	}
}

func TestCompleteMissionGrantsImmediateReward(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	m, err := svc.AddMission(ctx, "write report", progress.DifficultyHard)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	res := svc.ToggleMission(ctx, m.ID)
	if res == nil || !res.Completed {
		t.Fatalf("toggle result = %+v", res)
	}
	if res.Reward.XP != 20 || res.Reward.Gems != 4 {
		t.Fatalf("hard reward = %+v, want xp=20 gems=4", res.Reward)
	}
	// Difficulty rewards are not deferred.
	if svc.State().XP != 20 || svc.State().Gems != 4 {
		t.Fatalf("state xp=%d gems=%d, want 20/4", svc.State().XP, svc.State().Gems)
	}
	// Completing the first mission earns the "first" badge.
	if len(res.NewBadges) != 1 || res.NewBadges[0] != "first" {
		t.Fatalf("new badges = %v, want [first]", res.NewBadges)
	}
}

func TestToggleSpamRegrantsReward(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	m, err := svc.AddMission(ctx, "stretch", progress.DifficultyEasy)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	svc.ToggleMission(ctx, m.ID) // complete: +5 XP
	xpAfterFirst := svc.State().XP

	res := svc.ToggleMission(ctx, m.ID) // un-complete: no penalty
	if res.Completed {
		t.Fatalf("second toggle should un-complete")
	}
	if svc.State().XP != xpAfterFirst {
		t.Fatalf("un-completing changed xp %d->%d", xpAfterFirst, svc.State().XP)
	}

	svc.ToggleMission(ctx, m.ID) // re-complete: reward again
	if svc.State().XP != xpAfterFirst+5 {
		t.Fatalf("re-completion xp=%d, want %d", svc.State().XP, xpAfterFirst+5)
	}
}

func TestToggleUnknownMissionIsNoop(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	before := *svc.State()
	if res := svc.ToggleMission(ctx, 9999); res != nil {
		t.Fatalf("expected nil result, got %+v", res)
	}
	if svc.State().XP != before.XP || svc.State().Gems != before.Gems {
		t.Fatalf("no-op toggle mutated state")
	}
}

func TestRemoveMission(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	m, err := svc.AddMission(ctx, "trash me", progress.DifficultyMedium)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !svc.RemoveMission(ctx, m.ID) {
		t.Fatalf("remove returned false")
	}
	if svc.State().Mission(m.ID) != nil {
		t.Fatalf("mission still present")
	}
	if svc.RemoveMission(ctx, m.ID) {
		t.Fatalf("second remove should be a no-op")
	}
}

func TestAddMissionRejectsEmptyText(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.AddMission(context.Background(), "   ", progress.DifficultyEasy); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestAchievementEvaluationIsIdempotent(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	m, _ := svc.AddMission(ctx, "one and done", progress.DifficultyEasy)
	res := svc.ToggleMission(ctx, m.ID)
	if len(res.NewBadges) == 0 {
		t.Fatalf("expected a new badge on first completion")
	}

	if again := svc.EvaluateAchievements(ctx); len(again) != 0 {
		t.Fatalf("re-evaluation yielded %v, want none", again)
	}
}

func TestAchievementRewardDeferredUntilDismissal(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	m, _ := svc.AddMission(ctx, "easy win", progress.DifficultyEasy)
	svc.ToggleMission(ctx, m.ID)

	// Easy reward credited immediately; the "first" badge's 3 gems are not.
	if svc.State().Gems != 1 {
		t.Fatalf("gems=%d before dismissal, want 1", svc.State().Gems)
	}

	note := svc.Notifier().Next()
	if note == nil || note.Kind != NotifyAchievement || note.BadgeID != "first" {
		t.Fatalf("visible = %+v, want first badge", note)
	}
	svc.Dismiss(ctx)
	if svc.State().Gems != 4 {
		t.Fatalf("gems=%d after dismissal, want 4", svc.State().Gems)
	}
}

func TestDuplicateDrawRefunds(t *testing.T) {
	// Rolls: rarity 0.0 (common), pick 0.0 (first common), per theme order.
	svc := newTestService(t, &scriptRNG{vals: []float64{0, 0}})
	ctx := context.Background()

	svc.State().Gems = 5
	svc.State().UnlockedCards = []string{"poke-001"}
	xpBefore := svc.State().XP

	if err := svc.DrawCard(ctx, "pokemon"); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if svc.State().Gems != 0 {
		t.Fatalf("gems=%d after paying, want 0", svc.State().Gems)
	}

	out, err := svc.RevealCard(ctx)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if out.Card.ID != "poke-001" || out.IsNew {
		t.Fatalf("outcome = %+v, want duplicate poke-001", out)
	}
	if svc.State().Gems != 5 {
		t.Fatalf("gems=%d after refund, want 5", svc.State().Gems)
	}
	if svc.State().XP != xpBefore+10 {
		t.Fatalf("xp=%d, want %d", svc.State().XP, xpBefore+10)
	}
	if len(svc.State().UnlockedCards) != 1 {
		t.Fatalf("collection grew on duplicate: %v", svc.State().UnlockedCards)
	}
}

func TestNewUnlockGrantsXPAndBadge(t *testing.T) {
	svc := newTestService(t, &scriptRNG{vals: []float64{0, 0}})
	ctx := context.Background()

	svc.State().Gems = 5
	if err := svc.DrawCard(ctx, "pokemon"); err != nil {
		t.Fatalf("draw: %v", err)
	}
	out, err := svc.RevealCard(ctx)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if !out.IsNew {
		t.Fatalf("outcome = %+v, want new unlock", out)
	}
	if svc.State().XP != 50 {
		t.Fatalf("xp=%d, want 50", svc.State().XP)
	}
	if !svc.State().HasCard(out.Card.ID) {
		t.Fatalf("card %s not recorded", out.Card.ID)
	}
	if !svc.State().HasBadge("gacha_first") {
		t.Fatalf("gacha_first badge not earned")
	}
	// The XP crossed the level 2 threshold; the unlock also earned a
	// badge. Both notifications must be queued, level-up first (reveal
	// runs level detection before achievement evaluation).
	first := svc.Notifier().Next()
	if first == nil || first.Kind != NotifyLevelUp {
		t.Fatalf("first notification = %+v, want level-up", first)
	}
}

func TestDrawInsufficientGems(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	svc.State().Gems = 3
	err := svc.DrawCard(ctx, "pokemon")
	if err == nil {
		t.Fatalf("expected insufficient gems error")
	}
	var short InsufficientGemsError
	if !errors.As(err, &short) || short.Short() != 2 {
		t.Fatalf("error = %v", err)
	}
	if svc.State().Gems != 3 {
		t.Fatalf("gems=%d, want 3 untouched", svc.State().Gems)
	}
	if svc.State().PendingDraw != nil {
		t.Fatalf("pending draw recorded on rejection")
	}
	if svc.Notifier().Pending() != 0 {
		t.Fatalf("notification queued on rejection")
	}
}

func TestDrawRejectedWhilePending(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	svc.State().Gems = 10
	if err := svc.DrawCard(ctx, "pokemon"); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := svc.DrawCard(ctx, "digimon"); err == nil {
		t.Fatalf("second draw must be rejected while one is pending")
	}
	if svc.State().Gems != 5 {
		t.Fatalf("gems=%d, want 5 (only one cost paid)", svc.State().Gems)
	}
}

func TestRevealWithoutPendingDraw(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.RevealCard(context.Background()); err == nil {
		t.Fatalf("expected error with no pending draw")
	}
}

func TestPendingDrawSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	svc := NewService(storage.NewStore(db, nil), cat, &scriptRNG{vals: []float64{0, 0}}, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc.State().Gems = 5
	svc.save(ctx)
	if err := svc.DrawCard(ctx, "pokemon"); err != nil {
		t.Fatalf("draw: %v", err)
	}
	_ = db.Close()

	// A new session sees the paid draw and can reveal it.
	db2, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer db2.Close()
	svc2 := NewService(storage.NewStore(db2, nil), cat, &scriptRNG{vals: []float64{0, 0}}, nil)
	if err := svc2.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if svc2.State().PendingDraw == nil {
		t.Fatalf("pending draw lost across sessions")
	}
	if _, err := svc2.RevealCard(ctx); err != nil {
		t.Fatalf("reveal after reload: %v", err)
	}
}

func TestUnlocksAndBadgesNeverShrink(t *testing.T) {
	svc := newTestService(t, gacha.NewSeededRNG(7))
	ctx := context.Background()

	svc.State().Gems = 500
	cards, badges := 0, 0
	for i := 0; i < 40; i++ {
		if err := svc.DrawCard(ctx, "pokemon"); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if _, err := svc.RevealCard(ctx); err != nil {
			t.Fatalf("reveal %d: %v", i, err)
		}
		for svc.Notifier().Next() != nil {
			svc.Dismiss(ctx)
		}

		if len(svc.State().UnlockedCards) < cards {
			t.Fatalf("unlocked cards shrank at draw %d", i)
		}
		if len(svc.State().Achieved) < badges {
			t.Fatalf("achieved badges shrank at draw %d", i)
		}
		cards = len(svc.State().UnlockedCards)
		badges = len(svc.State().Achieved)
	}
	if cards == 0 {
		t.Fatalf("40 draws unlocked nothing")
	}
}

func TestStatePersistsAcrossDismissal(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	svc := NewService(storage.NewStore(db, nil), cat, nil, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	svc.State().XP = 100
	svc.detectLevelUp()
	svc.Notifier().Next()
	svc.Dismiss(ctx)
	_ = db.Close()

	db2, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()
	st, err := storage.NewStore(db2, nil).Load(ctx)
	if err != nil {
		t.Fatalf("reload state: %v", err)
	}
	if st.Gems != 10 || st.XP != 200 {
		t.Fatalf("persisted gems=%d xp=%d, want 10/200", st.Gems, st.XP)
	}
}
