package model

import (
	"time"
)

type Product struct {
	ID uint `gorm:"primarykey" json:"id"`

	SKU         string `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Brand       string `gorm:"size:100" json:"brand"`

	// DiscountPrice, when present, is conceptually <= Price; the schema does
	// not enforce it.
	Price         float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPrice *float64 `gorm:"type:decimal(10,2)" json:"discount_price,omitempty"`
	Stock         int      `gorm:"not null;default:0" json:"stock"`
	IsActive      bool     `gorm:"not null;default:true" json:"is_active"`

	// SEO & publishing
	Slug            string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	MetaTitle       string `gorm:"size:255" json:"meta_title"`
	MetaDescription string `gorm:"size:500" json:"meta_description"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	OrderItems    []OrderItem    `gorm:"foreignKey:ProductID" json:"-"`
	Reviews       []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	WishlistItems []WishlistItem `gorm:"foreignKey:ProductID" json:"-"`
	Categories    []Category     `gorm:"many2many:products_categories;joinForeignKey:ProductID;joinReferences:CategoryID" json:"categories,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
