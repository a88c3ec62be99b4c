package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chronotes/model"
	"chronotes/store"
	"chronotes/utils"
)

func (l *Local) ListFolders(ctx context.Context) ([]model.Folder, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM folders ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		var created, updated int64
		if err := rows.Scan(&f.ID, &f.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		f.CreatedAt = fromMillis(created)
		f.UpdatedAt = fromMillis(updated)
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (l *Local) GetFolder(ctx context.Context, id string) (model.Folder, error) {
	var f model.Folder
	var created, updated int64
	err := l.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM folders WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Folder{}, store.ErrNotFound
	}
	if err != nil {
		return model.Folder{}, fmt.Errorf("get folder %s: %w", id, err)
	}
	f.CreatedAt = fromMillis(created)
	f.UpdatedAt = fromMillis(updated)
	return f, nil
}

func (l *Local) folderNames(ctx context.Context, excludeID string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT name FROM folders WHERE id != ?`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (l *Local) CreateFolder(ctx context.Context, name string) (model.Folder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	names, err := l.folderNames(ctx, "")
	if err != nil {
		return model.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	now := time.Now()
	folder := model.Folder{
		ID:        utils.GenerateID(),
		Name:      store.UniqueName(name, names),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO folders (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		folder.ID, folder.Name, toMillis(now), toMillis(now))
	if err != nil {
		return model.Folder{}, fmt.Errorf("create folder: %w", err)
	}
	return folder, nil
}

func (l *Local) RenameFolder(ctx context.Context, id, name string) (model.Folder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	names, err := l.folderNames(ctx, id)
	if err != nil {
		return model.Folder{}, fmt.Errorf("rename folder: %w", err)
	}

	unique := store.UniqueName(name, names)
	now := time.Now()

	result, err := l.db.ExecContext(ctx,
		`UPDATE folders SET name = ?, updated_at = ? WHERE id = ?`,
		unique, toMillis(now), id)
	if err != nil {
		return model.Folder{}, fmt.Errorf("rename folder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.Folder{}, err
	}
	if affected == 0 {
		return model.Folder{}, store.ErrNotFound
	}

	return l.GetFolder(ctx, id)
}

// DeleteFolder cascades the folder's notes first, then the folder, inside
// one transaction. The local store can afford atomicity the remote cannot.
func (l *Local) DeleteFolder(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE folder_id = ?`, id); err != nil {
		return fmt.Errorf("cascade folder notes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

func (l *Local) CountFolders(ctx context.Context) (int64, error) {
	var count int64
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count folders: %w", err)
	}
	return count, nil
}

// DeleteAll wipes the guest database.
func (l *Local) DeleteAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("delete all notes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM folders`); err != nil {
		return fmt.Errorf("delete all folders: %w", err)
	}

	return tx.Commit()
}
