package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typeflow/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typeflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestOpenSeedsTextsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeflow.db")
	st, err := Open(path)
	require.NoError(t, err)
	texts, err := st.ListTexts(context.Background())
	require.NoError(t, err)
	require.Len(t, texts, len(seedTexts))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	texts, err = st.ListTexts(context.Background())
	require.NoError(t, err)
	require.Len(t, texts, len(seedTexts))
}

func TestTextLifecycle(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.InsertText(ctx, model.Text{Duration: 60, Content: "the quick brown fox", Active: true})
	require.NoError(t, err)
	_, err = st.InsertText(ctx, model.Text{Duration: 60, Content: "inactive", Active: false})
	require.NoError(t, err)

	got, err := st.GetText(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.Text{ID: id, Duration: 60, Content: "the quick brown fox", Active: true}, got)

	active, err := st.ListActiveTexts(ctx, 60)
	require.NoError(t, err)
	require.Len(t, active, 2, "seeded 60s text plus the new active one")
	for _, text := range active {
		require.True(t, text.Active)
	}

	require.NoError(t, st.DeleteText(ctx, id))
	_, err = st.GetText(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, st.DeleteText(ctx, id), ErrNotFound)
}

func TestTopResultsOrdersByWPM(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	texts, err := st.ListActiveTexts(ctx, 60)
	require.NoError(t, err)
	require.NotEmpty(t, texts)
	textID := texts[0].ID

	ada := "ada"
	for _, r := range []model.SessionResult{
		{UserID: &ada, Duration: 60, WPM: 45, Accuracy: 95, CorrectChars: 225, RawKeystrokes: 240, TextID: textID},
		{Duration: 60, WPM: 80, Accuracy: 99, CorrectChars: 400, RawKeystrokes: 404, TextID: textID},
		{Duration: 60, WPM: 20, Accuracy: 90, CorrectChars: 100, RawKeystrokes: 111, TextID: textID},
		{Duration: 90, WPM: 120, Accuracy: 99, CorrectChars: 900, RawKeystrokes: 905, TextID: textID},
	} {
		stored, err := st.InsertResult(ctx, r)
		require.NoError(t, err)
		require.NotZero(t, stored.ID)
		require.Equal(t, fixed, stored.CreatedAt)
	}

	top, err := st.TopResults(ctx, 60, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, 80, top[0].WPM)
	require.Nil(t, top[0].UserID)
	require.Equal(t, 45, top[1].WPM)
	require.NotNil(t, top[1].UserID)
	require.Equal(t, "ada", *top[1].UserID)
	require.Equal(t, fixed, top[1].CreatedAt)
}
