package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Максимальные длины полей форм
	MaxSearchLength    = 200
	MaxFirstNameLength = 100
	MaxLastNameLength  = 100
	MaxEmailLength     = 255
)

// NormalizeSearch trims the toolbar search text and rejects oversized input.
func NormalizeSearch(search string) (string, error) {
	search = strings.TrimSpace(search)
	if utf8.RuneCountInString(search) > MaxSearchLength {
		return "", fmt.Errorf("search cannot exceed %d characters", MaxSearchLength)
	}
	return search, nil
}

// NormalizeName trims a first or last name. Emptiness is left to the user
// API, which reports it with its own message.
func NormalizeName(name string, max int, fieldName string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > max {
		return "", fmt.Errorf("%s cannot exceed %d characters", fieldName, max)
	}
	return name, nil
}

// NormalizeEmail trims the address; format checks happen server-side.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if len(email) > MaxEmailLength {
		return "", fmt.Errorf("email cannot exceed %d characters", MaxEmailLength)
	}
	return email, nil
}
