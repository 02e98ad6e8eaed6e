package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/verte-zerg/typeflow/internal/model"
)

// PlaceholderText is shown when no text could be fetched.
const PlaceholderText = "No text available for this duration. Please add some texts in your backend."

const submitTimeout = 10 * time.Second

// TextFetcher fetches prompt texts.
type TextFetcher interface {
	FetchText(ctx context.Context, duration int) (model.Text, error)
}

// ResultSubmitter submits session results.
type ResultSubmitter interface {
	SubmitResult(ctx context.Context, res model.SessionResult) error
}

// LoadPrompt fetches a text for duration. Any failure is logged and
// replaced by the placeholder text, which carries no text id.
func LoadPrompt(ctx context.Context, f TextFetcher, duration int) model.Text {
	text, err := f.FetchText(ctx, duration)
	if err != nil {
		slog.WarnContext(ctx, "fetch text failed, using placeholder", "duration", duration, "error", err)
		return model.Text{Duration: duration, Content: PlaceholderText, Active: true}
	}
	return text
}

// Reporter submits results in the background. Failures are logged and
// never reach the caller.
type Reporter struct {
	submitter ResultSubmitter
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewReporter returns a Reporter using submitter.
func NewReporter(submitter ResultSubmitter) *Reporter {
	return &Reporter{submitter: submitter, timeout: submitTimeout}
}

// Report submits res at most once without blocking. Results for the
// placeholder prompt are dropped.
func (r *Reporter) Report(res model.SessionResult) {
	if res.TextID == 0 {
		slog.Debug("skip result submission without text id")
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.submitter.SubmitResult(ctx, res); err != nil {
			slog.WarnContext(ctx, "submit result failed", "text_id", res.TextID, "error", err)
			return
		}
		slog.InfoContext(ctx, "result submitted", "text_id", res.TextID, "wpm", res.WPM, "accuracy", res.Accuracy)
	}()
}

// Wait blocks until in-flight submissions complete.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
