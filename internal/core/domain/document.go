package domain

import "time"

// DocumentStatus partitions documents into the active and archived sets.
type DocumentStatus string

const (
	StatusActive   DocumentStatus = "active"
	StatusArchived DocumentStatus = "archived"
)

// Category tags a document for capacity accounting.
type Category string

const (
	CategoryDocuments Category = "documents"
	CategoryPhotos    Category = "photos"
	CategoryCards     Category = "cards"
	CategoryOther     Category = "other"
)

// DefaultCategoryLimits are the per-category caps on the active set.
// "other" is the catch-all and effectively unbounded.
var DefaultCategoryLimits = map[Category]int{
	CategoryDocuments: 100,
	CategoryPhotos:    100,
	CategoryCards:     100,
	CategoryOther:     999,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDocuments, CategoryPhotos, CategoryCards, CategoryOther:
		return true
	}
	return false
}

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryDocuments, CategoryPhotos, CategoryCards, CategoryOther}
}

// Document is the ledger's core entity. Code is unique across the union of
// the active and archived sets for the lifetime of the ledger. Category never
// changes after creation.
type Document struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	Code            string         `json:"code" bson:"code"`
	LastName        string         `json:"last_name" bson:"last_name"`
	FirstName       string         `json:"first_name" bson:"first_name"`
	MiddleName      string         `json:"middle_name,omitempty" bson:"middle_name,omitempty"`
	Phone           string         `json:"phone" bson:"phone"`
	Email           string         `json:"email,omitempty" bson:"email,omitempty"`
	ItemDescription string         `json:"item_description,omitempty" bson:"item_description,omitempty"`
	Category        Category       `json:"category" bson:"category"`
	DepositAmount   float64        `json:"deposit_amount" bson:"deposit_amount"`
	PickupAmount    float64        `json:"pickup_amount" bson:"pickup_amount"`
	DepositedAt     time.Time      `json:"deposited_at" bson:"deposited_at"`
	PickupDate      string         `json:"pickup_date,omitempty" bson:"pickup_date,omitempty"`
	Status          DocumentStatus `json:"status" bson:"status"`
	// ArchivedAt is stamped once, at the moment of issue. Zero while active.
	ArchivedAt time.Time `json:"archived_at,omitempty" bson:"archived_at,omitempty"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
