package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAliasLength       = 140
	MaxDescriptionLength = 255
)

// ValidateAmount validates a transfer or deposit amount. Amounts are
// stored at cent precision; sub-cent values would be rounded by the
// database and break conservation between the two legs.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: more than 2 decimal places", ErrInvalidAmount)
	}

	return nil
}

// NormalizeAlias trims surrounding whitespace and validates the alias.
// Pix keys are free-form strings (email, phone, random key) but must be
// non-empty, bounded and free of whitespace and control characters.
func NormalizeAlias(alias string) (string, error) {
	alias = strings.TrimSpace(alias)

	if alias == "" {
		return "", fmt.Errorf("%w: alias cannot be empty", ErrInvalidAlias)
	}

	if len(alias) > MaxAliasLength {
		return "", fmt.Errorf("%w: alias exceeds %d characters", ErrInvalidAlias, MaxAliasLength)
	}

	for _, r := range alias {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: alias contains whitespace or control characters", ErrInvalidAlias)
		}
	}

	return alias, nil
}

// ValidateDescription bounds the free-text statement description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}
