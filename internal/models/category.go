package models

import "github.com/google/uuid"

// CategoryOrigin tells whether a category was seeded or added by an admin.
type CategoryOrigin string

const (
	CategoryOriginFixed  CategoryOrigin = "fixed"
	CategoryOriginManual CategoryOrigin = "manual"
)

// Category groups suppliers by service type (buffet, photography, venue...).
type Category struct {
	ID     uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Origin CategoryOrigin `json:"origin"`
	Active bool           `json:"active"`
}
