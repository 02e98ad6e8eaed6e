package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeflow/internal/model"
)

// RenderTexts prints stored texts as a table. Content is cut to fit width;
// a width of 0 disables truncation.
func RenderTexts(w io.Writer, texts []model.Text, width int) error {
	if len(texts) == 0 {
		_, err := fmt.Fprintln(w, "No texts stored.")
		return err
	}
	headers := []string{"ID", "Dur", "Active", "Content"}
	rows := make([][]string, 0, len(texts))
	for _, t := range texts {
		active := "no"
		if t.Active {
			active = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			fmt.Sprintf("%ds", t.Duration),
			active,
			t.Content,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 1: true}) {
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
