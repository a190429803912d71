package models

import (
	"time"

	"github.com/google/uuid"
)

// SupplierType distinguishes individual (PF) from company (PJ) suppliers.
type SupplierType string

const (
	SupplierIndividual SupplierType = "individual"
	SupplierCompany    SupplierType = "company"
)

// SupplierStatus gates public visibility; only active suppliers are listed.
type SupplierStatus string

const (
	SupplierActive  SupplierStatus = "active"
	SupplierPending SupplierStatus = "pending"
	SupplierBlocked SupplierStatus = "blocked"
)

// Supplier is one vendor profile, owned 1:1 by a user account.
type Supplier struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Type         SupplierType   `json:"supplier_type"`
	FantasyName  string         `json:"fantasy_name"`
	LegalName    *string        `json:"legal_name,omitempty"` // company only
	CNPJ         *string        `json:"cnpj,omitempty"`       // company only
	Description  string         `json:"description"`
	CategoryID   *uuid.UUID     `json:"category_id,omitempty"`
	Address      *string        `json:"address,omitempty"`
	ZipCode      *string        `json:"zip_code,omitempty"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	PriceRange   *string        `json:"price_range,omitempty"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	InstagramURL *string        `json:"instagram_url,omitempty"`
	WhatsappURL  *string        `json:"whatsapp_url,omitempty"`
	SiteURL      *string        `json:"site_url,omitempty"`
	Status       SupplierStatus `json:"status"`
	AvgRating    *float64       `json:"avg_rating,omitempty"` // approved reviews only; filled by queries
	CreatedAt    time.Time      `json:"created_at"`
}
