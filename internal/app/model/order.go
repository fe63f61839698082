package model

import (
	"time"
)

type OrderStatus string // order lifecycle code

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type Order struct {
	ID                uint  `gorm:"primarykey" json:"id"`
	UserID            uint  `gorm:"not null;index" json:"user_id"`
	ShippingAddressID *uint `gorm:"index" json:"shipping_address_id,omitempty"`

	OrderNumber string      `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Status      OrderStatus `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	// TotalAmount is recomputed from the items at creation time, never taken
	// from caller input.
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	IsPaid      bool    `gorm:"not null;default:false" json:"is_paid"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User            User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ShippingAddress *UserAddress `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	Items           []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments        []Payment    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	Quantity int `gorm:"not null;default:1" json:"quantity"`
	// UnitPrice snapshots the product price at purchase time and does not
	// track later catalog changes.
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
