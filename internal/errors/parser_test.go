package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError_RecordNotFound(t *testing.T) {
	tests := []struct {
		context  string
		wantCode string
	}{
		{"find user by id", UserNotFound},
		{"find product by sku", CatalogProductNotFound},
		{"find category", CatalogCategoryNotFound},
		{"load order", OrderNotFound},
		{"load payment", PaymentNotFound},
		{"load review", ReviewNotFound},
		{"something else", ResourceNotFound},
	}

	for _, tt := range tests {
		info := ParseError(gorm.ErrRecordNotFound, tt.context)
		assert.Equal(t, tt.wantCode, info.Code, "context %q", tt.context)
	}
}

func TestParseError_DuplicateKey(t *testing.T) {
	tests := []struct {
		err      string
		wantCode string
	}{
		{`duplicate key value violates unique constraint "idx_users_email"`, UserEmailExists},
		{`duplicate key value violates unique constraint "idx_users_phone"`, UserPhoneExists},
		{`duplicate key value violates unique constraint "idx_products_sku"`, CatalogSKUExists},
		{`duplicate key value violates unique constraint "idx_products_slug"`, CatalogSlugExists},
		{`duplicate key value violates unique constraint "idx_orders_order_number"`, OrderNumberExists},
		{`duplicate key value violates unique constraint "idx_payments_transaction_id"`, PaymentTransactionExists},
		{`UNIQUE constraint failed: shopping_cart.user_id, shopping_cart.product_id`, CartDuplicateProduct},
		{`duplicate key value violates unique constraint "uix_wishlist_product"`, WishlistDuplicateProduct},
		{`UNIQUE constraint failed: reviews.user_id, reviews.product_id`, ReviewAlreadyExists},
		{`duplicate key value violates unique constraint "something_unknown"`, ResourceAlreadyExists},
	}

	for _, tt := range tests {
		info := ParseError(errors.New(tt.err), "")
		assert.Equal(t, tt.wantCode, info.Code, "error %q", tt.err)
	}
}

func TestParseError_ForeignKey(t *testing.T) {
	stillReferenced := errors.New(`update or delete on table "products" violates foreign key constraint "fk_order_items_product" on table "order_items": Key (id)=(1) is still referenced`)
	info := ParseError(stillReferenced, "")
	assert.Equal(t, ResourceConflict, info.Code)

	missingParent := errors.New(`insert or update on table "orders" violates foreign key constraint "fk_orders_user"`)
	info = ParseError(missingParent, "")
	assert.Equal(t, ResourceNotFound, info.Code)
}

func TestParseError_CheckConstraint(t *testing.T) {
	ratingViolation := errors.New(`new row for relation "reviews" violates check constraint "chk_reviews_rating"`)
	info := ParseError(ratingViolation, "")
	assert.Equal(t, ReviewInvalidRating, info.Code)

	other := errors.New(`new row for relation "products" violates check constraint "chk_products_price"`)
	info = ParseError(other, "")
	assert.Equal(t, ValidationInvalidRange, info.Code)
}

func TestParseError_NotNull(t *testing.T) {
	err := errors.New(`null value in column "email" of relation "users" violates not-null constraint`)
	info := ParseError(err, "")
	assert.Equal(t, ValidationRequired, info.Code)
}

func TestParseError_Unknown(t *testing.T) {
	info := ParseError(errors.New("connection reset by peer"), "")
	assert.Equal(t, InternalDatabaseError, info.Code)
}
