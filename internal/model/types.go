// Package model defines shared data structures.
package model

import "time"

// Supported test durations in seconds.
var Durations = []int{60, 90, 120}

// DefaultDuration is the duration selected when none is configured.
const DefaultDuration = 90

// Config defines practice settings.
type Config struct {
	Duration int
	UserID   string
	APIBase  string
	Theme    string
}

// ServerConfig defines settings for the text/result service.
type ServerConfig struct {
	Addr       string
	DBPath     string
	Production bool
}

// Text is a prompt paragraph served for a duration.
type Text struct {
	ID       int64  `json:"id"`
	Duration int    `json:"duration"`
	Content  string `json:"content"`
	Active   bool   `json:"active"`
}

// SessionResult is the payload submitted once a session finishes.
type SessionResult struct {
	UserID        *string `json:"user_id"`
	Duration      int     `json:"duration"`
	WPM           int     `json:"wpm"`
	Accuracy      int     `json:"accuracy"`
	CorrectChars  int     `json:"correct_chars"`
	RawKeystrokes int     `json:"raw_keystrokes"`
	TextID        int64   `json:"text_id"`
}

// StoredResult is a persisted session result.
type StoredResult struct {
	ID int64
	SessionResult
	CreatedAt time.Time
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	UserID      string    `json:"user_id"`
	WPM         int       `json:"wpm"`
	Accuracy    int       `json:"accuracy"`
	Achievement string    `json:"achievement"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidDuration reports whether d is a supported test duration.
func ValidDuration(d int) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}
