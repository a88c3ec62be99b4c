package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chronotes/model"
	"chronotes/store"
)

func newNoteFixture(t *testing.T) (*store.Memory, model.Folder) {
	t.Helper()
	mem := store.NewMemory()
	folder, err := mem.CreateFolder(context.Background(), "Notes")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	return mem, folder
}

func TestNoteServiceCreate(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	t.Run("valid note", func(t *testing.T) {
		note, err := svc.Create(ctx, mem, model.Note{
			FolderID: folder.ID,
			Title:    "  Meeting notes  ",
			Content:  "body",
			Tags:     []string{" work ", "", "q3"},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if note.Title != "Meeting notes" {
			t.Errorf("title = %q, want trimmed", note.Title)
		}
		if len(note.Tags) != 2 || note.Tags[0] != "work" || note.Tags[1] != "q3" {
			t.Errorf("tags = %v, want trimmed non-empty tags", note.Tags)
		}
		if note.ID == "" {
			t.Error("note was not assigned an id")
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := svc.Create(ctx, mem, model.Note{FolderID: "missing", Title: "t"})
		if err == nil || !strings.Contains(err.Error(), "folder does not exist") {
			t.Errorf("expected folder existence error, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			note model.Note
		}{
			{"blank title", model.Note{FolderID: folder.ID, Title: "   "}},
			{"overlong title", model.Note{FolderID: folder.ID, Title: strings.Repeat("x", 201)}},
			{"overlong content", model.Note{FolderID: folder.ID, Title: "t", Content: strings.Repeat("x", 100001)}},
			{"too many tags", model.Note{FolderID: folder.ID, Title: "t", Tags: make21Tags()}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := svc.Create(ctx, mem, tt.note); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})
}

func make21Tags() []string {
	tags := make([]string, 21)
	for i := range tags {
		tags[i] = strings.Repeat("t", i+1)
	}
	return tags
}

func TestNoteServiceUpdate(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	note, _ := svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "Original"})

	t.Run("title change", func(t *testing.T) {
		title := "  Renamed  "
		updated, err := svc.Update(ctx, mem, note.ID, store.NoteUpdate{Title: &title})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("title = %q, want Renamed", updated.Title)
		}
	})

	t.Run("blank title rejected", func(t *testing.T) {
		blank := "   "
		if _, err := svc.Update(ctx, mem, note.ID, store.NoteUpdate{Title: &blank}); err == nil {
			t.Error("expected error for blank title")
		}
	})

	t.Run("move to existing folder", func(t *testing.T) {
		other, _ := mem.CreateFolder(ctx, "Other")
		updated, err := svc.Update(ctx, mem, note.ID, store.NoteUpdate{FolderID: &other.ID})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.FolderID != other.ID {
			t.Errorf("folder = %q, want %q", updated.FolderID, other.ID)
		}
	})

	t.Run("move to missing folder rejected", func(t *testing.T) {
		missing := "missing"
		if _, err := svc.Update(ctx, mem, note.ID, store.NoteUpdate{FolderID: &missing}); err == nil {
			t.Error("expected error for missing folder")
		}
	})

	t.Run("tags are normalized", func(t *testing.T) {
		tags := []string{"  go  ", "", "review", "   "}
		updated, err := svc.Update(ctx, mem, note.ID, store.NoteUpdate{Tags: &tags})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if len(updated.Tags) != 2 || updated.Tags[0] != "go" || updated.Tags[1] != "review" {
			t.Errorf("tags = %v, want [go review]", updated.Tags)
		}
	})

	t.Run("too many tags rejected", func(t *testing.T) {
		tags := make21Tags()
		if _, err := svc.Update(ctx, mem, note.ID, store.NoteUpdate{Tags: &tags}); err == nil {
			t.Error("expected error for 21 tags")
		}
	})
}

func TestNoteServiceSaveContent(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	note, _ := svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "Draft", Content: "v1"})

	t.Run("save appends a history snapshot", func(t *testing.T) {
		outcome, err := svc.SaveContent(ctx, mem, note.ID, "v2")
		if err != nil {
			t.Fatalf("SaveContent: %v", err)
		}
		if outcome.SnapshotErr != nil {
			t.Fatalf("unexpected snapshot error: %v", outcome.SnapshotErr)
		}
		if outcome.Note.Content != "v2" {
			t.Errorf("content = %q, want v2", outcome.Note.Content)
		}

		snaps, err := mem.ListSnapshots(ctx, note.ID)
		if err != nil {
			t.Fatalf("ListSnapshots: %v", err)
		}
		if len(snaps) != 1 || snaps[0].Content != "v2" {
			t.Fatalf("snapshots = %+v, want one snapshot of the saved state", snaps)
		}
	})

	t.Run("failed update returns an error, no snapshot", func(t *testing.T) {
		mem.FailNext = errors.New("store down")
		if _, err := svc.SaveContent(ctx, mem, note.ID, "v3"); err == nil {
			t.Fatal("expected injected store failure")
		}
		snaps, _ := mem.ListSnapshots(ctx, note.ID)
		if len(snaps) != 1 {
			t.Errorf("snapshots = %d, want the single earlier one", len(snaps))
		}
	})
}

func TestNoteServiceSaveContentSnapshotWarning(t *testing.T) {
	ctx := context.Background()
	b := &snapshotFailingBackend{Memory: store.NewMemory()}
	folder, _ := b.CreateFolder(ctx, "Notes")
	note, _ := b.CreateNote(ctx, model.Note{FolderID: folder.ID, Title: "t", Content: "v1"})

	svc := &NoteService{}
	outcome, err := svc.SaveContent(ctx, b, note.ID, "v2")
	if err != nil {
		t.Fatalf("SaveContent: %v", err)
	}
	if outcome.SnapshotErr == nil {
		t.Fatal("expected a snapshot warning")
	}
	if outcome.Note.Content != "v2" {
		t.Errorf("save did not commit: content = %q", outcome.Note.Content)
	}

	// The primary write stuck even though the snapshot failed.
	stored, _ := b.GetNote(ctx, note.ID)
	if stored.Content != "v2" {
		t.Errorf("stored content = %q, want v2", stored.Content)
	}
}

// snapshotFailingBackend commits note writes but always fails history
// appends, modelling a healthy primary with a broken history collection.
type snapshotFailingBackend struct {
	*store.Memory
}

func (b *snapshotFailingBackend) AppendSnapshot(ctx context.Context, snap model.NoteSnapshot) error {
	return errors.New("history collection unavailable")
}

func TestNoteServiceSetPriority(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	note, _ := svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "t"})

	t.Run("set", func(t *testing.T) {
		updated, err := svc.SetPriority(ctx, mem, note.ID, model.PriorityHigh)
		if err != nil {
			t.Fatalf("SetPriority: %v", err)
		}
		if updated.Priority != model.PriorityHigh {
			t.Errorf("priority = %q, want high", updated.Priority)
		}
	})

	t.Run("setting the same priority clears it", func(t *testing.T) {
		updated, err := svc.SetPriority(ctx, mem, note.ID, model.PriorityHigh)
		if err != nil {
			t.Fatalf("SetPriority: %v", err)
		}
		if updated.Priority != model.PriorityNone {
			t.Errorf("priority = %q, want cleared", updated.Priority)
		}
	})

	t.Run("switching priorities does not clear", func(t *testing.T) {
		svc.SetPriority(ctx, mem, note.ID, model.PriorityHigh)
		updated, err := svc.SetPriority(ctx, mem, note.ID, model.PriorityLow)
		if err != nil {
			t.Fatalf("SetPriority: %v", err)
		}
		if updated.Priority != model.PriorityLow {
			t.Errorf("priority = %q, want low", updated.Priority)
		}
	})

	t.Run("invalid priority", func(t *testing.T) {
		if _, err := svc.SetPriority(ctx, mem, note.ID, model.Priority("critical")); err == nil {
			t.Error("expected error for unknown priority")
		}
		if _, err := svc.SetPriority(ctx, mem, note.ID, model.PriorityNone); err == nil {
			t.Error("expected error for empty priority")
		}
	})
}

func TestNoteServiceMarkReviewed(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	note, _ := svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "t"})
	svc.SetPriority(ctx, mem, note.ID, model.PriorityHigh)

	before := time.Now()
	updated, err := svc.MarkReviewed(ctx, mem, note.ID)
	if err != nil {
		t.Fatalf("MarkReviewed: %v", err)
	}
	if updated.Priority != model.PriorityNone {
		t.Errorf("priority = %q, want cleared", updated.Priority)
	}
	if updated.LastReviewedAt.Before(before) {
		t.Errorf("last reviewed at %v not stamped", updated.LastReviewedAt)
	}
	if got := BucketFor(updated, time.Now()); got != model.BucketReviewed {
		t.Errorf("bucket after review = %q, want reviewed", got)
	}
}

func TestNoteServiceBoard(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	fresh, _ := svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "fresh"})
	pinned, _ := svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "pinned"})
	svc.SetPriority(ctx, mem, pinned.ID, model.PriorityMedium)

	board, err := svc.Board(ctx, mem)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if board.Size() != 2 {
		t.Fatalf("board holds %d notes, want 2", board.Size())
	}
	if len(board.Reviewed) != 1 || board.Reviewed[0].ID != fresh.ID {
		t.Errorf("reviewed column = %+v, want the fresh note", board.Reviewed)
	}
	if len(board.Medium) != 1 || board.Medium[0].ID != pinned.ID {
		t.Errorf("medium column = %+v, want the pinned note", board.Medium)
	}
}

func TestNoteServiceDeleteAllData(t *testing.T) {
	mem, folder := newNoteFixture(t)
	svc := &NoteService{}
	ctx := context.Background()

	svc.Create(ctx, mem, model.Note{FolderID: folder.ID, Title: "t"})

	t.Run("wrong phrase leaves data intact", func(t *testing.T) {
		if err := svc.DeleteAllData(ctx, mem, "delete all my data"); err == nil {
			t.Fatal("expected confirmation mismatch error")
		}
		count, _ := mem.CountNotes(ctx)
		if count != 1 {
			t.Errorf("notes count = %d, want 1", count)
		}
	})

	t.Run("exact phrase wipes everything", func(t *testing.T) {
		if err := svc.DeleteAllData(ctx, mem, DeleteAllConfirmation); err != nil {
			t.Fatalf("DeleteAllData: %v", err)
		}
		notes, _ := mem.CountNotes(ctx)
		folders, _ := mem.CountFolders(ctx)
		if notes != 0 || folders != 0 {
			t.Errorf("after wipe: %d notes, %d folders", notes, folders)
		}
	})
}
