package model

import (
	"time"
)

type UserAddress struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Line1      string  `gorm:"size:255;not null" json:"line1"` // street, house number
	Line2      *string `gorm:"size:255" json:"line2,omitempty"`
	City       string  `gorm:"size:100;not null" json:"city"`
	State      *string `gorm:"size:100" json:"state,omitempty"`
	PostalCode string  `gorm:"size:20;not null" json:"postal_code"`
	Country    string  `gorm:"size:2;not null" json:"country"` // ISO 3166-1 alpha-2

	// At most one default of each kind per user, enforced by the account
	// service, not by a constraint.
	IsDefaultShipping bool `gorm:"not null;default:false" json:"is_default_shipping"`
	IsDefaultBilling  bool `gorm:"not null;default:false" json:"is_default_billing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Orders []Order `gorm:"foreignKey:ShippingAddressID" json:"-"`
}

func (UserAddress) TableName() string {
	return "user_address"
}
