package util

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("my-password")
	require.NoError(t, err)
	assert.NotEqual(t, "my-password", hash)

	assert.True(t, VerifyPassword(hash, "my-password"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	number := NewOrderNumber(42, now)

	assert.True(t, strings.HasPrefix(number, "20260823-42-"))
	assert.Regexp(t, regexp.MustCompile(`^\d{8}-42-\d{6}$`), number)
}

func TestNewTransactionID(t *testing.T) {
	first := NewTransactionID()
	second := NewTransactionID()

	assert.True(t, strings.HasPrefix(first, "txn-"))
	assert.NotEqual(t, first, second)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Home & Garden", "home-garden"},
		{"  Wireless Mouse  ", "wireless-mouse"},
		{"Déjà Vu", "d-j-vu"},
		{"already-slugged", "already-slugged"},
		{"UPPER case 123", "upper-case-123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}
