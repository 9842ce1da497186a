package engine

import (
	"log/slog"
	"time"

	"questme/internal/progress"
)

type NotificationKind int

const (
	NotifyLevelUp NotificationKind = iota + 1
	NotifyAchievement
)

func (k NotificationKind) String() string {
	switch k {
	case NotifyLevelUp:
		return "level-up"
	case NotifyAchievement:
		return "achievement"
	default:
		return "unknown"
	}
}

// Notification is one queued reward announcement. Its reward payload is
// frozen at enqueue time and applied only on dismissal; rewardApplied
// guards against the reward ever being applied twice.
type Notification struct {
	Kind  NotificationKind
	Level int // level-up only

	BadgeID   string // achievement only
	BadgeName string
	BadgeDesc string

	Reward progress.Reward

	rewardApplied bool
}

// Notifier serializes reward notifications: strict FIFO, at most one
// visible at a time. A held notifier (a navigational view occupying the
// modal) admits nothing until released.
type Notifier struct {
	queue   []*Notification
	visible *Notification
	held    bool

	// cachedLevel is the last level announced, updated at detection
	// time so a second XP gain before dismissal cannot re-announce the
	// same milestone.
	cachedLevel int

	// delay models the close-animation pause between dismissal and the
	// next item; zero is correct, anything else is presentation pacing.
	delay time.Duration

	log *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{cachedLevel: 1, log: logger}
}

// SetDismissDelay sets the presentational pause applied on dismissal.
func (n *Notifier) SetDismissDelay(d time.Duration) {
	if d > 0 {
		n.delay = d
	}
}

// Enqueue appends a notification to the tail. It never displaces the
// visible one.
func (n *Notifier) Enqueue(note *Notification) {
	n.queue = append(n.queue, note)
	n.log.Debug("notification queued", "kind", note.Kind.String(), "pending", len(n.queue))
}

// Next admits the head of the queue if nothing is visible and no
// navigational view holds the modal. It returns the notification that
// became visible, or nil.
func (n *Notifier) Next() *Notification {
	if n.visible != nil || n.held || len(n.queue) == 0 {
		return nil
	}
	n.visible = n.queue[0]
	n.queue = n.queue[1:]
	n.log.Debug("notification visible", "kind", n.visible.Kind.String(), "pending", len(n.queue))
	return n.visible
}

// Visible returns the currently shown notification, if any.
func (n *Notifier) Visible() *Notification { return n.visible }

// Pending returns the number of queued (not yet visible) notifications.
func (n *Notifier) Pending() int { return len(n.queue) }

// Hold marks the modal as occupied by a navigational view. Queued
// notifications wait until Release.
func (n *Notifier) Hold() { n.held = true }

// Release frees the modal after a navigational view closes.
func (n *Notifier) Release() { n.held = false }

// Held reports whether a navigational view occupies the modal.
func (n *Notifier) Held() bool { return n.held }
