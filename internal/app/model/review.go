package model

import (
	"time"
)

// Review is a user's rating of a product. New reviews start unapproved;
// public listings only show approved ones.
type Review struct {
	ID        uint `gorm:"primarykey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:uix_user_product_review" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:uix_user_product_review;index" json:"product_id"`

	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title      string `gorm:"size:255" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	IsApproved bool   `gorm:"not null;default:false" json:"is_approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
