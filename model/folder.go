package model

import "time"

type Folder struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id,omitempty"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FolderListing is a folder together with the number of notes it owns,
// as returned by the folder list endpoint.
type FolderListing struct {
	Folder
	NoteCount int `json:"note_count"`
}
