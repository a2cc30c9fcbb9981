package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Validation constants
const (
	MaxSymbolLength    = 16
	MaxAssetNameLength = 64
	MaxHolderLength    = 64
	MaxTenantLength    = 64
	MaxMemoLength      = 256
)

// NormalizeSymbol folds a user-typed symbol to its canonical form.
// Full-width and compatibility characters are folded by NFKC before
// upper-casing, so "ｇｏｌｄ" and "Gold" both become "GOLD".
func NormalizeSymbol(raw string) (string, error) {
	folded := norm.NFKC.String(strings.TrimSpace(raw))
	symbol := cases.Upper(language.Und).String(folded)

	n := utf8.RuneCountInString(symbol)
	if n == 0 || n > MaxSymbolLength {
		return "", fmt.Errorf("%w: must be 1 to %d characters", ErrInvalidSymbol, MaxSymbolLength)
	}

	for _, r := range symbol {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", fmt.Errorf("%w: %q is not a letter or digit", ErrInvalidSymbol, r)
		}
	}

	return symbol, nil
}

// ValidateDecimals checks the precision an asset declares.
func ValidateDecimals(decimals int32) error {
	if decimals < 0 || decimals > MaxDecimals {
		return fmt.Errorf("%w: must be between 0 and %d", ErrInvalidDecimals, MaxDecimals)
	}
	return nil
}

// ValidateAssetName validates the display name of an asset.
func ValidateAssetName(name string) error {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)

	if n == 0 {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAssetName)
	}

	if n > MaxAssetNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	}

	return nil
}

// ValidateHolder validates a holder identifier (a Discord user id).
// Identifiers are compared byte for byte, so surrounding whitespace is
// rejected rather than trimmed.
func ValidateHolder(holder string) error {
	if !cleanIdentifier(holder, MaxHolderLength) {
		return ErrInvalidHolder
	}
	return nil
}

// ValidateTenant validates a tenant identifier (a Discord guild id).
func ValidateTenant(tenant string) error {
	if !cleanIdentifier(tenant, MaxTenantLength) {
		return ErrInvalidTenant
	}
	return nil
}

func cleanIdentifier(id string, maxLen int) bool {
	return id != "" && len(id) <= maxLen && strings.TrimSpace(id) == id
}

// ValidateMemo validates a free-text transaction memo.
func ValidateMemo(memo string) error {
	if utf8.RuneCountInString(memo) > MaxMemoLength {
		return fmt.Errorf("%w: limit is %d characters", ErrMemoTooLong, MaxMemoLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 500
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
