package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/artemgv/ritmo/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ritmo.db"))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	})
	return s
}

func TestInsertAndListSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := model.SessionRecord{
		StartedAt:  start,
		EndedAt:    start.Add(5 * time.Minute),
		Source:     "book.txt",
		Mode:       "phrase",
		TargetWPM:  300,
		ChunksRead: 120,
		WordsRead:  400,
		DurationMs: 300000,
	}
	results := []model.PredictionResult{
		{Predicted: "hello", Actual: "hello", Loss: 0, WordIndex: 10},
		{Predicted: "warld", Actual: "world", Loss: 0.2, WordIndex: 11},
	}
	id, err := s.InsertSession(ctx, rec, results)
	if err != nil {
		t.Fatalf("InsertSession() = %v", err)
	}
	if id <= 0 {
		t.Fatalf("InsertSession() id = %d, want positive", id)
	}

	sessions, err := s.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("ListSessions() = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("ListSessions() returned %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if got.TargetWPM != 300 || got.WordsRead != 400 || got.DurationMs != 300000 {
		t.Errorf("session = %+v, want wpm 300, words 400, duration 300000", got)
	}
	if !got.EndedAt.Equal(rec.EndedAt) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, rec.EndedAt)
	}

	stats, err := s.PredictionStatsForSessions(ctx, []int64{id})
	if err != nil {
		t.Fatalf("PredictionStatsForSessions() = %v", err)
	}
	if stats.TotalWords != 2 || stats.ExactMatches != 1 {
		t.Errorf("stats = %+v, want 2 words, 1 exact", stats)
	}
	if stats.AverageLoss < 0.09 || stats.AverageLoss > 0.11 {
		t.Errorf("AverageLoss = %f, want 0.1", stats.AverageLoss)
	}
}

func TestListSessionsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, source := range []string{"a.txt", "b.txt", "a.txt"} {
		rec := model.SessionRecord{
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			EndedAt:    base.Add(time.Duration(i)*time.Hour + time.Minute),
			Source:     source,
			Mode:       "word",
			TargetWPM:  250,
			WordsRead:  100,
			DurationMs: 60000,
		}
		if _, err := s.InsertSession(ctx, rec, nil); err != nil {
			t.Fatalf("InsertSession() = %v", err)
		}
	}

	bySource, err := s.ListSessions(ctx, model.StatsConfig{Source: "a.txt"})
	if err != nil {
		t.Fatalf("ListSessions(source) = %v", err)
	}
	if len(bySource) != 2 {
		t.Errorf("ListSessions(source a.txt) = %d sessions, want 2", len(bySource))
	}

	since := base.Add(90 * time.Minute)
	recent, err := s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("ListSessions(since) = %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("ListSessions(since) = %d sessions, want 1", len(recent))
	}
}

func TestPositions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if idx, err := s.GetPosition(ctx, "book.txt"); err != nil || idx != 0 {
		t.Fatalf("GetPosition(fresh) = %d, %v, want 0, nil", idx, err)
	}
	if err := s.SavePosition(ctx, "book.txt", 42); err != nil {
		t.Fatalf("SavePosition() = %v", err)
	}
	if err := s.SavePosition(ctx, "book.txt", 57); err != nil {
		t.Fatalf("SavePosition(update) = %v", err)
	}
	idx, err := s.GetPosition(ctx, "book.txt")
	if err != nil {
		t.Fatalf("GetPosition() = %v", err)
	}
	if idx != 57 {
		t.Errorf("GetPosition() = %d, want 57", idx)
	}
}
