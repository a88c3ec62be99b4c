package usecase

import (
	"testing"
	"time"

	"chronotes/model"
)

func TestBucketFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	reviewed := func(ago time.Duration) model.Note {
		return model.Note{LastReviewedAt: now.Add(-ago)}
	}

	tests := []struct {
		name string
		note model.Note
		want model.Bucket
	}{
		{"manual high wins over recent review", model.Note{Priority: model.PriorityHigh, LastReviewedAt: now}, model.BucketUrgent},
		{"manual medium wins over stale review", model.Note{Priority: model.PriorityMedium, LastReviewedAt: now.Add(-100 * day)}, model.BucketMedium},
		{"manual low wins", model.Note{Priority: model.PriorityLow, LastReviewedAt: now.Add(-100 * day)}, model.BucketLow},
		{"never reviewed is urgent", model.Note{}, model.BucketUrgent},
		{"reviewed just now", reviewed(0), model.BucketReviewed},
		{"six days is still reviewed", reviewed(6 * day), model.BucketReviewed},
		{"one week exactly is low", reviewed(7 * day), model.BucketLow},
		{"thirteen days is low", reviewed(13 * day), model.BucketLow},
		{"two weeks exactly is medium", reviewed(14 * day), model.BucketMedium},
		{"twenty days is medium", reviewed(20 * day), model.BucketMedium},
		{"three weeks exactly is urgent", reviewed(21 * day), model.BucketUrgent},
		{"very stale is urgent", reviewed(365 * day), model.BucketUrgent},
		{"future review timestamp is reviewed", reviewed(-time.Hour), model.BucketReviewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketFor(tt.note, now); got != tt.want {
				t.Errorf("BucketFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	notes := []model.Note{
		{ID: "a"},
		{ID: "b", LastReviewedAt: now.Add(-15 * day)},
		{ID: "c", LastReviewedAt: now.Add(-time.Hour)},
		{ID: "d", Priority: model.PriorityHigh, LastReviewedAt: now},
		{ID: "e", LastReviewedAt: now.Add(-8 * day)},
		{ID: "f", LastReviewedAt: now.Add(-30 * day)},
	}

	board := Classify(notes, now)

	ids := func(notes []model.Note) []string {
		out := make([]string, len(notes))
		for i, n := range notes {
			out[i] = n.ID
		}
		return out
	}
	assertIDs := func(t *testing.T, got []model.Note, want ...string) {
		t.Helper()
		g := ids(got)
		if len(g) != len(want) {
			t.Fatalf("got %v, want %v", g, want)
		}
		for i := range want {
			if g[i] != want[i] {
				t.Fatalf("got %v, want %v", g, want)
			}
		}
	}

	t.Run("notes land in order within columns", func(t *testing.T) {
		assertIDs(t, board.Urgent, "a", "d", "f")
		assertIDs(t, board.Medium, "b")
		assertIDs(t, board.Low, "e")
		assertIDs(t, board.Reviewed, "c")
	})

	t.Run("every note lands in exactly one column", func(t *testing.T) {
		if got := board.Size(); got != len(notes) {
			t.Errorf("board holds %d notes, want %d", got, len(notes))
		}
	})

	t.Run("empty input yields empty board", func(t *testing.T) {
		empty := Classify(nil, now)
		if empty.Size() != 0 {
			t.Errorf("expected empty board, got %d notes", empty.Size())
		}
	})
}
