package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeflow/internal/model"
)

const leaderboardTimeLayout = "2006-01-02 15:04"

// RenderLeaderboard prints ranked leaderboard rows. Lines wider than width
// are truncated; a width of 0 disables truncation.
func RenderLeaderboard(w io.Writer, duration int, entries []model.LeaderboardEntry, width int) error {
	if _, err := fmt.Fprintf(w, "Leaderboard (%ds)\n", duration); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No results yet. Complete a test to appear here.")
		return err
	}
	headers := []string{"#", "User", "WPM", "Acc", "Achiev.", "Time"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, LeaderboardRow(i+1, e))
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// LeaderboardRow formats a ranked entry as table cells.
func LeaderboardRow(rank int, e model.LeaderboardEntry) []string {
	user := e.UserID
	if user == "" {
		user = "unknown"
	}
	created := ""
	if !e.CreatedAt.IsZero() {
		created = e.CreatedAt.Local().Format(leaderboardTimeLayout)
	}
	return []string{
		strconv.Itoa(rank),
		user,
		strconv.Itoa(e.WPM),
		fmt.Sprintf("%d%%", e.Accuracy),
		e.Achievement,
		created,
	}
}
