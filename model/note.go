package model

import (
	"time"
)

// Priority is a manual review-priority override. An empty value means the
// review bucket is derived from LastReviewedAt instead.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the three manual priorities or empty.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Note struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id,omitempty"`
	FolderID       string    `bson:"folder_id" json:"folder_id"`
	Title          string    `bson:"title" json:"title"`
	Content        string    `bson:"content" json:"content"`
	Tags           []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Priority       Priority  `bson:"priority,omitempty" json:"priority,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
	LastReviewedAt time.Time `bson:"last_reviewed_at" json:"last_reviewed_at"`
}
