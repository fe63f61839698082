package model

import (
	"time"
)

// Category is a catalog grouping. ParentID forms a forest; children are
// discovered by querying on ParentID rather than held as an owned collection.
type Category struct {
	ID       uint  `gorm:"primarykey" json:"id"`
	ParentID *uint `gorm:"index" json:"parent_id,omitempty"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent   *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Products []Product `gorm:"many2many:products_categories;joinForeignKey:CategoryID;joinReferences:ProductID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
