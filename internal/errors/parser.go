package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a stable code and a human-readable message for one error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies a database error into an ErrorInfo. The transaction
// it came from has already been rolled back as a whole; this only decides how
// to report it. context is a free-form hint like "create user".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "internal error"}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: "requested record not found",
		}
	}

	// Unique constraint violation (Postgres 23505, SQLite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		if strings.Contains(errStrLower, "still referenced") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "row is still referenced and cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "referenced row does not exist",
		}
	}

	// Not-null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") &&
		strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "required column is missing",
		}
	}

	// Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "rating must be between 1 and 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "value violates a check constraint",
		}
	}

	return ErrorInfo{Code: InternalDatabaseError, Message: "database error"}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: UserEmailExists, Message: "email is already registered"}
	case strings.Contains(errLower, "phone"):
		return ErrorInfo{Code: UserPhoneExists, Message: "phone number is already registered"}
	case strings.Contains(errLower, "sku"):
		return ErrorInfo{Code: CatalogSKUExists, Message: "SKU is already in use"}
	case strings.Contains(errLower, "slug"):
		return ErrorInfo{Code: CatalogSlugExists, Message: "slug is already in use"}
	case strings.Contains(errLower, "order_number"):
		return ErrorInfo{Code: OrderNumberExists, Message: "order number is already in use"}
	case strings.Contains(errLower, "transaction_id"):
		return ErrorInfo{Code: PaymentTransactionExists, Message: "transaction reference is already recorded"}
	// Postgres names the index, SQLite names the table.
	case strings.Contains(errLower, "uix_user_product_cart"),
		strings.Contains(errLower, "shopping_cart"):
		return ErrorInfo{Code: CartDuplicateProduct, Message: "product is already in the cart"}
	case strings.Contains(errLower, "uix_wishlist_product"),
		strings.Contains(errLower, "wishlist_items"):
		return ErrorInfo{Code: WishlistDuplicateProduct, Message: "product is already on the wishlist"}
	case strings.Contains(errLower, "uix_user_product_review"),
		strings.Contains(errLower, "reviews."):
		return ErrorInfo{Code: ReviewAlreadyExists, Message: "product is already reviewed by this user"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "row already exists"}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "user"):
		return UserNotFound
	case strings.Contains(contextLower, "product"):
		return CatalogProductNotFound
	case strings.Contains(contextLower, "category"):
		return CatalogCategoryNotFound
	case strings.Contains(contextLower, "order"):
		return OrderNotFound
	case strings.Contains(contextLower, "payment"):
		return PaymentNotFound
	case strings.Contains(contextLower, "review"):
		return ReviewNotFound
	}
	return ResourceNotFound
}
