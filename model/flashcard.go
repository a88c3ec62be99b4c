package model

import "time"

// Flashcard is derived content, never the source of truth for a note. Cards
// are either parsed out of note text on demand or generated remotely and
// persisted for authenticated users.
type Flashcard struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	NoteID    string    `bson:"note_id" json:"note_id"`
	UserID    string    `bson:"user_id" json:"user_id,omitempty"`
	Title     string    `bson:"title" json:"title"`
	Front     string    `bson:"front" json:"front"`
	Back      string    `bson:"back" json:"back"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
