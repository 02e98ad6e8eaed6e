// Package stats contains typing metrics, achievement tiers and reporting.
package stats

import "math"

// charsPerWord is the conventional length of an average word.
const charsPerWord = 5.0

// ComputeWPM returns words per minute for correctCount characters typed
// within the elapsed part of a countdown. Elapsed time is floored at one
// second so a session that has just started never divides by zero.
func ComputeWPM(correctCount, durationSeconds, timeLeftSeconds int) int {
	elapsed := durationSeconds - timeLeftSeconds
	if elapsed < 1 {
		elapsed = 1
	}
	wpm := math.Round((float64(correctCount) / charsPerWord) / (float64(elapsed) / 60.0))
	if wpm < 0 {
		return 0
	}
	return int(wpm)
}

// ComputeAccuracy returns the share of keystrokes that produced a correct
// character, as a whole percentage in [0, 100]. With no keystrokes the
// denominator is treated as 1, which yields 0.
func ComputeAccuracy(correctCount, keystrokes int) int {
	den := keystrokes
	if den < 1 {
		den = 1
	}
	acc := int(math.Round(float64(correctCount) / float64(den) * 100))
	if acc < 0 {
		return 0
	}
	if acc > 100 {
		return 100
	}
	return acc
}
