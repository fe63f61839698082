package model

// ProductCategory is the products<->categories association row. The pair of
// foreign keys is the primary key; the row carries no identity of its own.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey;index" json:"product_id"`
	CategoryID uint `gorm:"primaryKey;index" json:"category_id"`

	Product  Product  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Category Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ProductCategory) TableName() string {
	return "products_categories"
}
