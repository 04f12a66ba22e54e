package types

import "time"

// Book statuses. A book moves between these as the owner reads it.
const (
	StatusList    = "list"
	StatusReading = "reading"
	StatusRead    = "read"
)

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusList:    true,
	StatusReading: true,
	StatusRead:    true,
}

// ValidStatus reports whether s is a recognized book status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Book represents a single tracked book.
type Book struct {
	BookID      string    `json:"book_id"`    // Decimal string, assigned on creation.
	AccountID   string    `json:"account_id"` // Owner identity, fixed at creation.
	Title       string    `json:"title"`      // Required, non-empty.
	Description string    `json:"description"`
	Status      string    `json:"status"` // One of the Status constants.
	Image       string    `json:"image"`  // Cover image URL.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetStatus sets the book status to the given value.
// Returns ErrInvalidStatus if the status is not recognized.
// Idempotent: setting the current status succeeds without error.
func (b *Book) SetStatus(status string) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// BookPatch carries the fields of a partial update. Nil fields are left
// unchanged on the target book.
type BookPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Image == nil
}

// Apply overwrites the book's fields with the patch's non-nil values and
// bumps UpdatedAt. Returns ErrEmptyTitle for an empty title and
// ErrInvalidStatus for an unknown status; the book is not modified on error.
func (p BookPatch) Apply(b *Book) error {
	if p.Title != nil && *p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Status != nil && !validStatuses[*p.Status] {
		return ErrInvalidStatus
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}
