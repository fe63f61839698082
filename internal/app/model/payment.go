package model

import (
	"time"
)

type PaymentStatus string // payment lifecycle code

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records a financial transaction against an order. Multiple
// payments per order are allowed (partial payments, retries).
type Payment struct {
	ID      uint `gorm:"primarykey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`

	PaymentMethod string        `gorm:"size:50;not null" json:"payment_method"` // e.g. credit_card, paypal
	Amount        float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        PaymentStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	TransactionID *string       `gorm:"size:100;uniqueIndex" json:"transaction_id,omitempty"` // external reference

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
