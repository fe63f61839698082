package service

import (
	"errors"
	"time"

	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/model"
	"github.com/GLEKOV/SQL-practice-shop-db/internal/app/repository"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/logger"
	"github.com/GLEKOV/SQL-practice-shop-db/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("account is temporarily locked")
	ErrAddressNotFound     = errors.New("address not found")
	ErrAddressAccessDenied = errors.New("unauthorized access to address")
)

// maxFailedLogins is the threshold after which the account locks out.
const maxFailedLogins = 5

const lockoutDuration = 15 * time.Minute

type RegisterInput struct {
	Email           string
	Phone           *string
	Password        string
	PreferredLocale string
	Timezone        string
	DefaultCurrency string
	MarketingOptIn  bool
}

type AccountService interface {
	Register(input RegisterInput) (*model.User, error)
	Authenticate(email, password string) (*model.User, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(user *model.User) error
	DeleteUser(id uint) error
	RequestErasure(id uint) error

	AddAddress(userID uint, address *model.UserAddress) error
	UpdateAddress(userID uint, address *model.UserAddress) error
	SetDefaultAddress(userID, addressID uint, shipping, billing bool) error
	DeleteAddress(userID, addressID uint) error
	ListAddresses(userID uint) ([]model.UserAddress, error)
}

type accountService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
}

func NewAccountService(db *gorm.DB, userRepo repository.UserRepository, addressRepo repository.AddressRepository) AccountService {
	return &accountService{
		db:          db,
		userRepo:    userRepo,
		addressRepo: addressRepo,
	}
}

func (s *accountService) Register(input RegisterInput) (*model.User, error) {
	logger.Debug("Registering user", map[string]interface{}{
		"email": input.Email,
	})

	_, err := s.userRepo.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		logger.Debug("Registration rejected: email already exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Email:           input.Email,
		Phone:           input.Phone,
		PasswordHash:    hash,
		PasswordAlgo:    util.PasswordAlgo,
		MarketingOptIn:  input.MarketingOptIn,
		TermsAcceptedAt: &now,
		Status:          model.UserStatusActive,
	}
	if input.PreferredLocale != "" {
		user.PreferredLocale = input.PreferredLocale
	}
	if input.Timezone != "" {
		user.Timezone = input.Timezone
	}
	if input.DefaultCurrency != "" {
		user.DefaultCurrency = input.DefaultCurrency
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Authenticate verifies credentials and keeps the failed-login counter and
// lockout window up to date.
func (s *accountService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.LockoutUntil != nil && user.LockoutUntil.After(time.Now()) {
		logger.Warn("Login attempt on locked account", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrAccountLocked
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins {
			until := time.Now().Add(lockoutDuration)
			user.LockoutUntil = &until
			user.FailedLoginAttempts = 0
		}
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *accountService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) UpdateProfile(user *model.User) error {
	existing, err := s.userRepo.FindByID(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Email != existing.Email {
		_, err := s.userRepo.FindByEmail(user.Email)
		if err == nil {
			return ErrEmailAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return s.userRepo.Update(user)
}

func (s *accountService) DeleteUser(id uint) error {
	logger.Info("Deleting user account", map[string]interface{}{
		"user_id": id,
	})

	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(id)
}

// RequestErasure marks the account for GDPR erasure and takes it out of
// active status. Actual row removal happens through DeleteUser.
func (s *accountService) RequestErasure(id uint) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now()
	user.GDPRErasureRequestedAt = &now
	user.Status = model.UserStatusDeleted

	logger.Info("Erasure requested for user", map[string]interface{}{
		"user_id": id,
	})
	return s.userRepo.Update(user)
}

func (s *accountService) AddAddress(userID uint, address *model.UserAddress) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	address.UserID = userID
	if !address.IsDefaultShipping && !address.IsDefaultBilling {
		return s.addressRepo.Create(address)
	}

	// Creating a new default demotes the previous one in the same transaction.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefaultShipping {
			if err := tx.Model(&model.UserAddress{}).
				Where("user_id = ?", userID).
				Update("is_default_shipping", false).Error; err != nil {
				return err
			}
		}
		if address.IsDefaultBilling {
			if err := tx.Model(&model.UserAddress{}).
				Where("user_id = ?", userID).
				Update("is_default_billing", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (s *accountService) UpdateAddress(userID uint, address *model.UserAddress) error {
	existing, err := s.addressRepo.FindByID(address.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if existing.UserID != userID {
		logger.Warn("Address update denied: not the owner", map[string]interface{}{
			"address_id": address.ID,
			"user_id":    userID,
			"owner_id":   existing.UserID,
		})
		return ErrAddressAccessDenied
	}

	address.UserID = userID
	if !address.IsDefaultShipping && !address.IsDefaultBilling {
		return s.addressRepo.Update(address)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefaultShipping {
			if err := tx.Model(&model.UserAddress{}).
				Where("user_id = ? AND id <> ?", userID, address.ID).
				Update("is_default_shipping", false).Error; err != nil {
				return err
			}
		}
		if address.IsDefaultBilling {
			if err := tx.Model(&model.UserAddress{}).
				Where("user_id = ? AND id <> ?", userID, address.ID).
				Update("is_default_billing", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

// SetDefaultAddress promotes an address to the user's default for shipping,
// billing or both. At most one default of each kind survives.
func (s *accountService) SetDefaultAddress(userID, addressID uint, shipping, billing bool) error {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if address.UserID != userID {
		return ErrAddressAccessDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if shipping {
			if err := tx.Model(&model.UserAddress{}).
				Where("user_id = ? AND id <> ?", userID, addressID).
				Update("is_default_shipping", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.UserAddress{}).
				Where("id = ?", addressID).
				Update("is_default_shipping", true).Error; err != nil {
				return err
			}
		}
		if billing {
			if err := tx.Model(&model.UserAddress{}).
				Where("user_id = ? AND id <> ?", userID, addressID).
				Update("is_default_billing", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.UserAddress{}).
				Where("id = ?", addressID).
				Update("is_default_billing", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *accountService) DeleteAddress(userID, addressID uint) error {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if address.UserID != userID {
		return ErrAddressAccessDenied
	}
	return s.addressRepo.Delete(addressID)
}

func (s *accountService) ListAddresses(userID uint) ([]model.UserAddress, error) {
	return s.addressRepo.FindByUserID(userID)
}
