package model

// Bucket is a review-board column. Every note lands in exactly one bucket.
type Bucket string

const (
	BucketUrgent   Bucket = "urgent"
	BucketMedium   Bucket = "medium"
	BucketLow      Bucket = "low"
	BucketReviewed Bucket = "reviewed"
)

// Board holds the four review columns in display order. Each column
// preserves the relative order of the notes it was given.
type Board struct {
	Urgent   []Note `json:"urgent"`
	Medium   []Note `json:"medium"`
	Low      []Note `json:"low"`
	Reviewed []Note `json:"reviewed"`
}

// Size returns the total number of notes across all columns.
func (b Board) Size() int {
	return len(b.Urgent) + len(b.Medium) + len(b.Low) + len(b.Reviewed)
}
