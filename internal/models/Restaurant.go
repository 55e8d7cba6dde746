package models

import "time"

// Restaurant is owned by exactly one OWNER user. Name is unique per owner.
type Restaurant struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;uniqueIndex:idx_restaurant_owner_name"`
	Description string `json:"description,omitempty"`

	// Image is the source URL submitted by the owner; ImageEncoded holds the
	// resized, transcoded payload as a base64 data URI.
	Image        string `json:"image,omitempty"`
	ImageEncoded string `json:"imageEncoded,omitempty"`

	OwnerID   uint      `json:"owner" gorm:"not null;index;uniqueIndex:idx_restaurant_owner_name"`
	Status    Status    `json:"status" gorm:"not null;default:'ACTIVE';index"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}
