package domain

import "time"

// PixKey maps a globally unique alias string to exactly one account.
// An account may hold any number of keys.
type PixKey struct {
	Alias     string
	AccountID string
	CreatedAt time.Time
}
