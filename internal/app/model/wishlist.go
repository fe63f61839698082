package model

import (
	"time"
)

// Wishlist is a named collection of saved products owned by a user.
type Wishlist struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User           `gorm:"foreignKey:UserID" json:"-"`
	Items []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem links a wishlist to a product, once per pair.
type WishlistItem struct {
	ID         uint `gorm:"primarykey" json:"id"`
	WishlistID uint `gorm:"not null;uniqueIndex:uix_wishlist_product" json:"wishlist_id"`
	ProductID  uint `gorm:"not null;uniqueIndex:uix_wishlist_product;index" json:"product_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Wishlist Wishlist `gorm:"foreignKey:WishlistID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
