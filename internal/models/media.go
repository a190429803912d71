package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaType is the kind of media item attached to a supplier profile.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

// MediaLimits caps how many items of each type a supplier may hold.
var MediaLimits = map[MediaType]int{
	MediaImage:    20,
	MediaVideo:    5,
	MediaDocument: 10,
}

// Media is one gallery item of a supplier profile.
type Media struct {
	ID         uuid.UUID `json:"id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Type       MediaType `json:"type"`
	URL        string    `json:"url"`
	S3Key      *string   `json:"-"` // set for S3-stored items, used on delete
	UploadedAt time.Time `json:"upload_date"`
}
