package usecase

import (
	"time"

	"chronotes/model"
)

const week = 7 * 24 * time.Hour

// BucketFor places a single note. A manual priority always wins; otherwise
// the bucket follows whole elapsed weeks since the last review, with a note
// that was never reviewed treated as maximally overdue.
func BucketFor(n model.Note, now time.Time) model.Bucket {
	switch n.Priority {
	case model.PriorityHigh:
		return model.BucketUrgent
	case model.PriorityMedium:
		return model.BucketMedium
	case model.PriorityLow:
		return model.BucketLow
	}

	if n.LastReviewedAt.IsZero() {
		return model.BucketUrgent
	}

	elapsed := now.Sub(n.LastReviewedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	// Boundary weeks are inclusive: reviewed exactly 3 weeks ago is urgent.
	switch weeks := elapsed / week; {
	case weeks >= 3:
		return model.BucketUrgent
	case weeks >= 2:
		return model.BucketMedium
	case weeks >= 1:
		return model.BucketLow
	default:
		return model.BucketReviewed
	}
}

// Classify partitions notes into the four review columns. Every note lands
// in exactly one column and each column keeps the input's relative order.
// Pure function of (notes, now); no side effects.
func Classify(notes []model.Note, now time.Time) model.Board {
	var board model.Board
	for _, n := range notes {
		switch BucketFor(n, now) {
		case model.BucketUrgent:
			board.Urgent = append(board.Urgent, n)
		case model.BucketMedium:
			board.Medium = append(board.Medium, n)
		case model.BucketLow:
			board.Low = append(board.Low, n)
		default:
			board.Reviewed = append(board.Reviewed, n)
		}
	}
	return board
}
