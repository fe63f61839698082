package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. Callers map these to
// whatever surface they expose; the strings are the stable contract.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Accounts (USER_) ====================
	UserNotFound    = "USER_NOT_FOUND"
	UserEmailExists = "USER_EMAIL_EXISTS"
	UserPhoneExists = "USER_PHONE_EXISTS"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogCategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogSKUExists        = "CATALOG_SKU_EXISTS"
	CatalogSlugExists       = "CATALOG_SLUG_EXISTS"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound     = "ORDER_NOT_FOUND"
	OrderNumberExists = "ORDER_NUMBER_EXISTS"

	// ==================== Payments (PAYMENT_) ====================
	PaymentNotFound          = "PAYMENT_NOT_FOUND"
	PaymentTransactionExists = "PAYMENT_TRANSACTION_EXISTS"

	// ==================== Cart & wishlist (CART_/WISHLIST_) ====================
	CartDuplicateProduct     = "CART_DUPLICATE_PRODUCT"
	WishlistDuplicateProduct = "WISHLIST_DUPLICATE_PRODUCT"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
