package models

import "time"

// Review is a rating a USER leaves against one restaurant. Comments is the
// append-only list of owner responses ("otherComments" on the wire); write
// rules allow at most one entry per author, and only from the owner of the
// reviewed restaurant.
type Review struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant" gorm:"not null;index"`
	AuthorID     uint            `json:"author" gorm:"not null;index"`
	Rating       float64         `json:"rating" gorm:"not null;index"`
	Comment      string          `json:"comment,omitempty"`
	DateVisit    string          `json:"dateVisit,omitempty"`
	Comments     []ReviewComment `json:"otherComments" gorm:"foreignKey:ReviewID"`
	Status       Status          `json:"status" gorm:"not null;default:'ACTIVE';index"`
	CreatedOn    time.Time       `json:"createdOn"`
	UpdatedOn    time.Time       `json:"updatedOn"`
}

type ReviewComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"-" gorm:"not null;index"`
	AuthorID  uint      `json:"author" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"not null"`
	Status    Status    `json:"status" gorm:"not null;default:'ACTIVE'"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}
