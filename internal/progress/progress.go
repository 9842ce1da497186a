package progress

import (
	"fmt"
	"math"
	"strings"
)

// XPCurveCoef is the quadratic leveling constant: reaching level L costs
// 50 * (L-1)^2 total XP.
const XPCurveCoef = 50

type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a difficulty name to its value. Unknown names
// are rejected rather than falling back.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "e":
		return DifficultyEasy, nil
	case "medium", "m":
		return DifficultyMedium, nil
	case "hard", "h":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Reward is a bundle of XP and gems granted by some event.
type Reward struct {
	XP   int
	Gems int
}

// XPRequiredForLevel returns the total XP threshold at which the given
// level is reached. Level 1 requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return XPCurveCoef * (level - 1) * (level - 1)
}

// LevelForXP is the exact inverse boundary of XPRequiredForLevel: it
// returns the unique L with XPRequiredForLevel(L) <= xp < XPRequiredForLevel(L+1).
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Sqrt(float64(xp)/XPCurveCoef)) + 1
}

// LevelReward is the bonus granted for reaching a new level: gems scale
// with the level, the XP bonus is flat.
func LevelReward(level int) Reward {
	return Reward{Gems: level * 5, XP: 100}
}

// DifficultyReward maps a mission difficulty to its completion reward.
// Unrecognized values fall back to the hard-tier reward.
func DifficultyReward(d Difficulty) Reward {
	switch d {
	case DifficultyEasy:
		return Reward{XP: 5, Gems: 1}
	case DifficultyMedium:
		return Reward{XP: 10, Gems: 2}
	default:
		return Reward{XP: 20, Gems: 4}
	}
}

// Fraction returns the progress through the current level as a value in
// [0,1], for rendering XP bars.
func Fraction(xp int) float64 {
	lvl := LevelForXP(xp)
	cur := XPRequiredForLevel(lvl)
	next := XPRequiredForLevel(lvl + 1)
	f := float64(xp-cur) / float64(next-cur)
	return math.Max(0, math.Min(1, f))
}
