package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/typeflow/internal/model"
)

func TestRenderTexts(t *testing.T) {
	var buf bytes.Buffer
	texts := []model.Text{
		{ID: 1, Duration: 60, Content: "short one", Active: true},
		{ID: 12, Duration: 120, Content: "a much longer paragraph that will be cut", Active: false},
	}
	if err := RenderTexts(&buf, texts, 30); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], " 1  60s yes") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "…") {
		t.Fatalf("expected truncated row: %q", lines[2])
	}
}

func TestRenderTextsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTexts(&buf, nil, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No texts stored.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
