package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerName string    `gorm:"size:255;not null" json:"customer_name"`
	Country      string    `gorm:"size:100;not null" json:"country"`
	Rating       int       `gorm:"not null" json:"rating"`
	ReviewDate   time.Time `gorm:"not null;default:now();index:idx_reviews_review_date,sort:desc" json:"review_date"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	User User `gorm:"foreignkey:UserID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
