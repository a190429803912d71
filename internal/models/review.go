package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is one user's rating of a supplier. At most one per user+supplier;
// it enters moderation as pending and only approved reviews count toward a
// supplier's average rating.
type Review struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	SupplierID uuid.UUID    `json:"supplier_id"`
	Rating     int          `json:"rating"` // 1..5
	Comment    string       `json:"comment"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ReviewWithUser adds the reviewer's display name for public listings.
type ReviewWithUser struct {
	Review
	UserName string `json:"user_name"`
}
