package models

import (
	"time"

	"github.com/google/uuid"
)

// Session backs a signed token. The token's jti is the session ID.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:"index"`
	CreatedAt time.Time

	User User `gorm:"foreignkey:UserID"`
}

func (s Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
