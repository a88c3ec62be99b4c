package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chronotes/model"
	"chronotes/store"
)

// NoteService orchestrates note mutations against whichever backend serves
// the session, plus the secondary effects (history snapshots) that only the
// remote backend supports.
type NoteService struct{}

// DeleteAllConfirmation is the literal phrase required to wipe a session's
// data. Checked before any backend call.
const DeleteAllConfirmation = "DELETE ALL MY DATA"

// SaveOutcome reports a content save. SnapshotErr is non-nil when the
// primary update committed but the history write failed; the save still
// counts, the caller surfaces the snapshot failure as a warning.
type SaveOutcome struct {
	Note        model.Note
	SnapshotErr error
}

func (s *NoteService) validate(title, content string, tags []string) (string, []string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, errors.New("note title is required")
	}
	if len(title) > 200 {
		return "", nil, errors.New("note title exceeds maximum length")
	}
	if len(content) > 100000 {
		return "", nil, errors.New("note content exceeds maximum length")
	}

	normalized, err := normalizeTags(tags)
	if err != nil {
		return "", nil, err
	}

	return title, normalized, nil
}

// normalizeTags trims tags, drops empty ones and enforces the tag limit.
// Applied on create and on update so the limit cannot be bypassed later.
func normalizeTags(tags []string) ([]string, error) {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	if len(normalized) > 20 {
		return nil, errors.New("maximum 20 tags allowed")
	}
	return normalized, nil
}

// Create validates the folder reference before any write: a note always
// belongs to exactly one folder.
func (s *NoteService) Create(ctx context.Context, b store.Backend, note model.Note) (model.Note, error) {
	title, tags, err := s.validate(note.Title, note.Content, note.Tags)
	if err != nil {
		return model.Note{}, err
	}
	note.Title = title
	note.Tags = tags

	if _, err := b.GetFolder(ctx, note.FolderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Note{}, errors.New("folder does not exist")
		}
		return model.Note{}, err
	}

	return b.CreateNote(ctx, note)
}

// Update merges title/tags/folder changes. Content changes go through
// SaveContent so they get a history snapshot.
func (s *NoteService) Update(ctx context.Context, b store.Backend, id string, upd store.NoteUpdate) (model.Note, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return model.Note{}, errors.New("note title is required")
		}
		upd.Title = &title
	}
	if upd.Tags != nil {
		tags, err := normalizeTags(*upd.Tags)
		if err != nil {
			return model.Note{}, err
		}
		upd.Tags = &tags
	}
	if upd.FolderID != nil {
		if _, err := b.GetFolder(ctx, *upd.FolderID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return model.Note{}, errors.New("folder does not exist")
			}
			return model.Note{}, err
		}
	}
	return b.UpdateNote(ctx, id, upd)
}

// SaveContent replaces a note's content. When the backend keeps history, an
// immutable snapshot of the saved state is appended after the primary update
// succeeds; a snapshot failure does not roll the save back.
func (s *NoteService) SaveContent(ctx context.Context, b store.Backend, id, content string) (SaveOutcome, error) {
	note, err := b.UpdateNote(ctx, id, store.NoteUpdate{Content: &content})
	if err != nil {
		return SaveOutcome{}, err
	}

	outcome := SaveOutcome{Note: note}
	if historian, ok := b.(store.Historian); ok {
		if err := historian.AppendSnapshot(ctx, model.SnapshotOf(note, time.Now())); err != nil {
			log.Printf("history snapshot for note %s failed: %v", id, err)
			outcome.SnapshotErr = fmt.Errorf("note saved, but history snapshot failed: %w", err)
		}
	}
	return outcome, nil
}

// SetPriority applies toggle-to-null semantics: setting the priority the
// note already has clears the override and returns the note to derived
// classification.
func (s *NoteService) SetPriority(ctx context.Context, b store.Backend, id string, priority model.Priority) (model.Note, error) {
	if !priority.Valid() || priority == model.PriorityNone {
		return model.Note{}, errors.New("priority must be high, medium or low")
	}

	note, err := b.GetNote(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	next := priority
	if note.Priority == priority {
		next = model.PriorityNone
	}

	return b.UpdateNote(ctx, id, store.NoteUpdate{Priority: &next})
}

// MarkReviewed stamps the review time and clears any manual priority,
// unconditionally moving the note to the reviewed bucket from any state.
func (s *NoteService) MarkReviewed(ctx context.Context, b store.Backend, id string) (model.Note, error) {
	now := time.Now()
	none := model.PriorityNone
	return b.UpdateNote(ctx, id, store.NoteUpdate{
		Priority:       &none,
		LastReviewedAt: &now,
	})
}

func (s *NoteService) Delete(ctx context.Context, b store.Backend, id string) error {
	return b.DeleteNote(ctx, id)
}

// Board classifies the session's notes into the review columns.
func (s *NoteService) Board(ctx context.Context, b store.Backend) (model.Board, error) {
	notes, err := b.ListNotes(ctx)
	if err != nil {
		return model.Board{}, err
	}
	return Classify(notes, time.Now()), nil
}

// DeleteAllData wipes the session's data after checking the typed
// confirmation phrase. The phrase check is a validation error and happens
// before any backend call.
func (s *NoteService) DeleteAllData(ctx context.Context, b store.Backend, confirmation string) error {
	if confirmation != DeleteAllConfirmation {
		return fmt.Errorf("confirmation phrase does not match %q", DeleteAllConfirmation)
	}
	return b.DeleteAll(ctx)
}
