package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"chronotes/model"
	"chronotes/store"
	"chronotes/utils"
)

const noteColumns = `id, folder_id, title, content, tags, priority, created_at, updated_at, last_reviewed_at`

func scanNote(scanner interface{ Scan(...any) error }) (model.Note, error) {
	var n model.Note
	var tags sql.NullString
	var priority string
	var created, updated, reviewed int64

	err := scanner.Scan(&n.ID, &n.FolderID, &n.Title, &n.Content, &tags,
		&priority, &created, &updated, &reviewed)
	if err != nil {
		return model.Note{}, err
	}

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &n.Tags); err != nil {
			return model.Note{}, fmt.Errorf("decode note tags: %w", err)
		}
	}
	n.Priority = model.Priority(priority)
	n.CreatedAt = fromMillis(created)
	n.UpdatedAt = fromMillis(updated)
	n.LastReviewedAt = fromMillis(reviewed)
	return n, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode note tags: %w", err)
	}
	return string(data), nil
}

func (l *Local) queryNotes(ctx context.Context, where string, args ...any) ([]model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY created_at, id`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (l *Local) ListNotes(ctx context.Context) ([]model.Note, error) {
	return l.queryNotes(ctx, "")
}

func (l *Local) ListFolderNotes(ctx context.Context, folderID string) ([]model.Note, error) {
	return l.queryNotes(ctx, `folder_id = ?`, folderID)
}

func (l *Local) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return l.queryNotes(ctx,
		`lower(title) LIKE ? OR lower(content) LIKE ? OR lower(COALESCE(tags, '')) LIKE ?`,
		pattern, pattern, pattern)
}

func (l *Local) GetNote(ctx context.Context, id string) (model.Note, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, store.ErrNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("get note %s: %w", id, err)
	}
	return n, nil
}

func (l *Local) CreateNote(ctx context.Context, note model.Note) (model.Note, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	note.ID = utils.GenerateID()
	note.UserID = ""
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.LastReviewedAt.IsZero() {
		note.LastReviewedAt = now
	}

	tags, err := encodeTags(note.Tags)
	if err != nil {
		return model.Note{}, err
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.FolderID, note.Title, note.Content, tags,
		string(note.Priority), toMillis(note.CreatedAt), toMillis(note.UpdatedAt),
		toMillis(note.LastReviewedAt))
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (l *Local) UpdateNote(ctx context.Context, id string, upd store.NoteUpdate) (model.Note, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sets := []string{"updated_at = ?"}
	args := []any{toMillis(time.Now())}

	if upd.FolderID != nil {
		sets = append(sets, "folder_id = ?")
		args = append(args, *upd.FolderID)
	}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Tags != nil {
		tags, err := encodeTags(*upd.Tags)
		if err != nil {
			return model.Note{}, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if upd.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*upd.Priority))
	}
	if upd.LastReviewedAt != nil {
		sets = append(sets, "last_reviewed_at = ?")
		args = append(args, toMillis(*upd.LastReviewedAt))
	}

	args = append(args, id)
	result, err := l.db.ExecContext(ctx,
		`UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.Note{}, err
	}
	if affected == 0 {
		return model.Note{}, store.ErrNotFound
	}

	return l.GetNote(ctx, id)
}

func (l *Local) DeleteNote(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	result, err := l.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (l *Local) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}
