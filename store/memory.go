package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"chronotes/model"
)

// Memory is an in-memory Backend used by tests. It implements the full
// capability surface, including the optional Historian and FlashcardStore
// interfaces, with insertion-ordered listings.
type Memory struct {
	mu         sync.Mutex
	folders    []model.Folder
	notes      []model.Note
	snapshots  []model.NoteSnapshot
	flashcards []model.Flashcard

	// FailNext, when set, makes the next mutation return the given error.
	// Lets tests exercise the surface-and-report error paths.
	FailNext error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) failNext() error {
	if err := m.FailNext; err != nil {
		m.FailNext = nil
		return err
	}
	return nil
}

func (m *Memory) ListFolders(ctx context.Context) ([]model.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Folder, len(m.folders))
	copy(out, m.folders)
	return out, nil
}

func (m *Memory) GetFolder(ctx context.Context, id string) (model.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		if f.ID == id {
			return f, nil
		}
	}
	return model.Folder{}, ErrNotFound
}

func (m *Memory) CreateFolder(ctx context.Context, name string) (model.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return model.Folder{}, err
	}
	names := make([]string, len(m.folders))
	for i, f := range m.folders {
		names[i] = f.Name
	}
	now := time.Now()
	folder := model.Folder{
		ID:        uuid.New().String(),
		Name:      UniqueName(name, names),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.folders = append(m.folders, folder)
	return folder, nil
}

func (m *Memory) RenameFolder(ctx context.Context, id, name string) (model.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return model.Folder{}, err
	}
	var names []string
	for _, f := range m.folders {
		if f.ID != id {
			names = append(names, f.Name)
		}
	}
	for i, f := range m.folders {
		if f.ID == id {
			f.Name = UniqueName(name, names)
			f.UpdatedAt = time.Now()
			m.folders[i] = f
			return f, nil
		}
	}
	return model.Folder{}, ErrNotFound
}

func (m *Memory) DeleteFolder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return err
	}
	idx := -1
	for i, f := range m.folders {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	// Cascade first, then the folder.
	kept := m.notes[:0]
	for _, n := range m.notes {
		if n.FolderID != id {
			kept = append(kept, n)
		}
	}
	m.notes = kept
	m.folders = append(m.folders[:idx], m.folders[idx+1:]...)
	return nil
}

func (m *Memory) CountFolders(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.folders)), nil
}

func (m *Memory) ListNotes(ctx context.Context) ([]model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Note, len(m.notes))
	copy(out, m.notes)
	return out, nil
}

func (m *Memory) ListFolderNotes(ctx context.Context, folderID string) ([]model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Note
	for _, n := range m.notes {
		if n.FolderID == folderID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *Memory) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var out []model.Note
	for _, n := range m.notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
			continue
		}
		for _, tag := range n.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) GetNote(ctx context.Context, id string) (model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Note{}, ErrNotFound
}

func (m *Memory) CreateNote(ctx context.Context, note model.Note) (model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return model.Note{}, err
	}
	now := time.Now()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.LastReviewedAt.IsZero() {
		note.LastReviewedAt = now
	}
	m.notes = append(m.notes, note)
	return note, nil
}

func (m *Memory) UpdateNote(ctx context.Context, id string, upd NoteUpdate) (model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return model.Note{}, err
	}
	for i, n := range m.notes {
		if n.ID != id {
			continue
		}
		if upd.FolderID != nil {
			n.FolderID = *upd.FolderID
		}
		if upd.Title != nil {
			n.Title = *upd.Title
		}
		if upd.Content != nil {
			n.Content = *upd.Content
		}
		if upd.Tags != nil {
			n.Tags = *upd.Tags
		}
		if upd.Priority != nil {
			n.Priority = *upd.Priority
		}
		if upd.LastReviewedAt != nil {
			n.LastReviewedAt = *upd.LastReviewedAt
		}
		n.UpdatedAt = time.Now()
		m.notes[i] = n
		return n, nil
	}
	return model.Note{}, ErrNotFound
}

func (m *Memory) DeleteNote(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return err
	}
	for i, n := range m.notes {
		if n.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) CountNotes(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.notes)), nil
}

func (m *Memory) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return err
	}
	m.folders = nil
	m.notes = nil
	m.snapshots = nil
	m.flashcards = nil
	return nil
}

func (m *Memory) AppendSnapshot(ctx context.Context, snap model.NoteSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return err
	}
	snap.ID = uuid.New().String()
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *Memory) ListSnapshots(ctx context.Context, noteID string) ([]model.NoteSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.NoteSnapshot
	for _, s := range m.snapshots {
		if s.NoteID == noteID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) SaveFlashcards(ctx context.Context, cards []model.Flashcard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return err
	}
	for _, card := range cards {
		if card.ID == "" {
			card.ID = uuid.New().String()
		}
		m.flashcards = append(m.flashcards, card)
	}
	return nil
}

func (m *Memory) ListFlashcards(ctx context.Context, noteID string) ([]model.Flashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Flashcard
	for _, card := range m.flashcards {
		if card.NoteID == noteID {
			out = append(out, card)
		}
	}
	return out, nil
}

func (m *Memory) ListAllFlashcards(ctx context.Context) ([]model.Flashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Flashcard, len(m.flashcards))
	copy(out, m.flashcards)
	return out, nil
}

func (m *Memory) DeleteFlashcard(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext(); err != nil {
		return err
	}
	for i, card := range m.flashcards {
		if card.ID == id {
			m.flashcards = append(m.flashcards[:i], m.flashcards[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
