package util

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber builds a unique order number: date, owning user, random
// suffix. The format is part of the persisted contract.
func NewOrderNumber(userID uint, now time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", now.UTC().Format("20060102"), userID, rand.Intn(900000)+100000)
}

// NewTransactionID returns an external-style payment transaction reference.
func NewTransactionID() string {
	return "txn-" + uuid.NewString()
}

// Slugify turns a display name into a URL slug. Collisions are left to the
// database's unique index.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
