package model

import (
	"time"
)

type UserStatus string // account status code

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBanned  UserStatus = "banned"
	UserStatusDeleted UserStatus = "deleted"
)

type User struct {
	ID    uint    `gorm:"primarykey" json:"id"`
	Email string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone *string `gorm:"size:32;uniqueIndex" json:"phone,omitempty"`

	// Authentication. Hashing and verification belong to an external
	// collaborator; this layer only stores the opaque result.
	PasswordHash      string     `gorm:"size:255;not null" json:"-"`
	PasswordAlgo      string     `gorm:"size:50" json:"-"`
	PasswordChangedAt *time.Time `json:"-"`

	// Localisation profile
	PreferredLocale string `gorm:"size:10;not null;default:'en'" json:"preferred_locale"`
	Timezone        string `gorm:"size:50;not null;default:'UTC'" json:"timezone"`
	DefaultCurrency string `gorm:"size:3;not null;default:'USD'" json:"default_currency"`

	// Terms and policies
	MarketingOptIn  bool       `gorm:"not null;default:false" json:"marketing_opt_in"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at,omitempty"`

	// Account status and security bookkeeping. Lock/unlock policy is external;
	// these are plain counters and timestamps.
	Status              UserStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_users_status_created_at" json:"status"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"failed_login_attempts"`
	LockoutUntil        *time.Time `json:"lockout_until,omitempty"`

	CreatedAt   time.Time  `gorm:"index:idx_users_status_created_at" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index" json:"last_login_at,omitempty"`

	// GDPR erasure request marker
	GDPRErasureRequestedAt *time.Time `json:"-"`

	// Relationships; every dependent below is exclusively owned and removed
	// with the user.
	Orders    []Order       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	Reviews   []Review      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Payments  []Payment     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Wishlists []Wishlist    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CartItems []CartItem    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Addresses []UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}

func (User) TableName() string {
	return "users"
}
