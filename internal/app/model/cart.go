package model

import (
	"time"
)

// CartItem stages a product for a user ahead of checkout. A user holds at
// most one row per product; adding the same product again increments the
// existing row's quantity.
type CartItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:uix_user_product_cart" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:uix_user_product_cart;index" json:"product_id"`

	Quantity int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "shopping_cart"
}
