package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chronotes/model"
	"chronotes/store"
)

type FolderService struct{}

func (s *FolderService) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("folder name is required")
	}
	if len(name) > 100 {
		return "", errors.New("folder name exceeds maximum length")
	}
	return name, nil
}

// List returns the session's folders together with their note counts.
func (s *FolderService) List(ctx context.Context, b store.Backend) ([]model.FolderListing, error) {
	folders, err := b.ListFolders(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := b.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(folders))
	for _, n := range notes {
		counts[n.FolderID]++
	}

	listings := make([]model.FolderListing, len(folders))
	for i, f := range folders {
		listings[i] = model.FolderListing{Folder: f, NoteCount: counts[f.ID]}
	}
	return listings, nil
}

func (s *FolderService) Create(ctx context.Context, b store.Backend, name string) (model.Folder, error) {
	name, err := s.validateName(name)
	if err != nil {
		return model.Folder{}, err
	}
	return b.CreateFolder(ctx, name)
}

func (s *FolderService) Rename(ctx context.Context, b store.Backend, id, name string) (model.Folder, error) {
	name, err := s.validateName(name)
	if err != nil {
		return model.Folder{}, err
	}
	return b.RenameFolder(ctx, id, name)
}

// Delete removes the folder and all notes it owns. Callers confirm with the
// user before reaching this point.
func (s *FolderService) Delete(ctx context.Context, b store.Backend, id string) error {
	return b.DeleteFolder(ctx, id)
}

const sampleNote = `# Welcome to Chronotes

Write notes in **markdown**, tag them, and review them on the board.

Wrap text in flashcard markers to extract cards:

???
What does the review board show?
---
Notes bucketed by how long ago you last reviewed them.
???
`

// Bootstrap seeds an empty guest store with a default folder and a sample
// note so first-run users do not land on an empty screen.
func (s *FolderService) Bootstrap(ctx context.Context, b store.Backend) error {
	count, err := b.CountFolders(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if count > 0 {
		return nil
	}

	folder, err := b.CreateFolder(ctx, "Notes")
	if err != nil {
		return fmt.Errorf("bootstrap folder: %w", err)
	}

	_, err = b.CreateNote(ctx, model.Note{
		FolderID: folder.ID,
		Title:    "Welcome to Chronotes",
		Content:  sampleNote,
		Tags:     []string{"getting-started"},
	})
	if err != nil {
		return fmt.Errorf("bootstrap note: %w", err)
	}
	return nil
}
