package model

import "time"

// NoteSnapshot is an immutable copy of a note's fields recorded when its
// content is saved. Snapshots are append-only and kept for authenticated
// sessions only.
type NoteSnapshot struct {
	ID       string    `bson:"_id,omitempty" json:"id"`
	NoteID   string    `bson:"note_id" json:"note_id"`
	UserID   string    `bson:"user_id" json:"user_id,omitempty"`
	FolderID string    `bson:"folder_id" json:"folder_id"`
	Title    string    `bson:"title" json:"title"`
	Content  string    `bson:"content" json:"content"`
	Tags     []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Priority Priority  `bson:"priority,omitempty" json:"priority,omitempty"`
	SavedAt  time.Time `bson:"saved_at" json:"saved_at"`
}

// SnapshotOf copies the persisted fields of a note into a snapshot record.
func SnapshotOf(n Note, at time.Time) NoteSnapshot {
	return NoteSnapshot{
		NoteID:   n.ID,
		UserID:   n.UserID,
		FolderID: n.FolderID,
		Title:    n.Title,
		Content:  n.Content,
		Tags:     n.Tags,
		Priority: n.Priority,
		SavedAt:  at,
	}
}
