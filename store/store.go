// Package store defines the persistence capabilities Chronotes needs and the
// errors its backends share. Two implementations exist: the remote MongoDB
// store used by authenticated sessions (repository package) and the embedded
// SQLite store used by guest sessions (localstore package). A session is
// served by exactly one backend; the two are never mixed.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chronotes/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// NoteUpdate is a partial-field merge for a note. Nil fields are left
// untouched. Priority set to a pointer-to-empty clears the manual override.
type NoteUpdate struct {
	FolderID       *string
	Title          *string
	Content        *string
	Tags           *[]string
	Priority       *model.Priority
	LastReviewedAt *time.Time
}

// Backend is the capability surface both storage modes implement.
//
// UpdateNote is last-writer-wins: there is no version token, and concurrent
// edits to the same note from multiple sessions can silently overwrite each
// other. That matches the product's accepted limitation.
type Backend interface {
	ListFolders(ctx context.Context) ([]model.Folder, error)
	GetFolder(ctx context.Context, id string) (model.Folder, error)
	CreateFolder(ctx context.Context, name string) (model.Folder, error)
	RenameFolder(ctx context.Context, id, name string) (model.Folder, error)
	// DeleteFolder first deletes every note whose folder_id matches, then
	// the folder itself. The cascade is not atomic.
	DeleteFolder(ctx context.Context, id string) error
	CountFolders(ctx context.Context) (int64, error)

	ListNotes(ctx context.Context) ([]model.Note, error)
	ListFolderNotes(ctx context.Context, folderID string) ([]model.Note, error)
	SearchNotes(ctx context.Context, query string) ([]model.Note, error)
	GetNote(ctx context.Context, id string) (model.Note, error)
	CreateNote(ctx context.Context, note model.Note) (model.Note, error)
	UpdateNote(ctx context.Context, id string, upd NoteUpdate) (model.Note, error)
	DeleteNote(ctx context.Context, id string) error
	CountNotes(ctx context.Context) (int64, error)

	// DeleteAll wipes every entity in the session's scope.
	DeleteAll(ctx context.Context) error
}

// Historian is the optional append-only history capability. Only the remote
// backend implements it; guest sessions keep no history.
type Historian interface {
	AppendSnapshot(ctx context.Context, snap model.NoteSnapshot) error
	ListSnapshots(ctx context.Context, noteID string) ([]model.NoteSnapshot, error)
}

// FlashcardStore is the optional persistence capability for generated
// flashcards. Only the remote backend implements it.
type FlashcardStore interface {
	SaveFlashcards(ctx context.Context, cards []model.Flashcard) error
	ListFlashcards(ctx context.Context, noteID string) ([]model.Flashcard, error)
	ListAllFlashcards(ctx context.Context) ([]model.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id string) error
}

// UniqueName de-duplicates a display name against its siblings by appending
// a numeric suffix: "Notes", "Notes (1)", "Notes (2)", ...
func UniqueName(name string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[e] = true
	}
	if !taken[name] {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
