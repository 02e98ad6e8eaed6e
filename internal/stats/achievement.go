package stats

import (
	"fmt"
	"math"
)

// Unbounded marks the open upper end of the last tier.
const Unbounded = math.MaxInt

// Tier is a named WPM range, inclusive on both ends.
type Tier struct {
	Name   string
	MinWPM int
	MaxWPM int
}

// DefaultTiers is the achievement table used by the client and the leaderboard.
var DefaultTiers = []Tier{
	{Name: "Beginner", MinWPM: 0, MaxWPM: 39},
	{Name: "Pro", MinWPM: 40, MaxWPM: 69},
	{Name: "Advanced", MinWPM: 70, MaxWPM: Unbounded},
}

// ValidateTiers checks that tiers are ordered and partition [0, +inf)
// without gaps or overlaps.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("achievement table is empty")
	}
	if tiers[0].MinWPM != 0 {
		return fmt.Errorf("achievement table must start at 0 wpm, starts at %d", tiers[0].MinWPM)
	}
	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("achievement tier %d has no name", i)
		}
		if t.MaxWPM < t.MinWPM {
			return fmt.Errorf("achievement tier %q has max %d below min %d", t.Name, t.MaxWPM, t.MinWPM)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if prev.MaxWPM == Unbounded || t.MinWPM != prev.MaxWPM+1 {
			return fmt.Errorf("achievement tiers %q and %q are not contiguous", prev.Name, t.Name)
		}
	}
	if last := tiers[len(tiers)-1]; last.MaxWPM != Unbounded {
		return fmt.Errorf("achievement tier %q must be unbounded", last.Name)
	}
	return nil
}

// Classify returns the first tier containing wpm. The second result is
// false when no tier matches, e.g. for a negative value.
func Classify(tiers []Tier, wpm int) (Tier, bool) {
	for _, t := range tiers {
		if wpm >= t.MinWPM && wpm <= t.MaxWPM {
			return t, true
		}
	}
	return Tier{}, false
}

// AchievementFor names the default tier for wpm, or "" when none matches.
func AchievementFor(wpm int) string {
	t, ok := Classify(DefaultTiers, wpm)
	if !ok {
		return ""
	}
	return t.Name
}
