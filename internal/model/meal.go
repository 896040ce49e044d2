package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal represents a single meal entry owned by a user.
// OccurredAt is a millisecond epoch timestamp; the calendar-date
// projection used in responses is derived from it in the handler layer.
type Meal struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:1024"`
	OccurredAt  int64     `json:"occurred_at" gorm:"not null;index"`
	OnDiet      bool      `json:"on_diet" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
