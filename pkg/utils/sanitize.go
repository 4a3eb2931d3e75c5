package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)

	ErrInvalidEmail = errors.New("invalid email format")
)

// SanitizeName strips markup and control characters from a username, list
// or item name and collapses runs of whitespace to single spaces.
func SanitizeName(input string) string {
	cleaned := keepRunes(stripHTML(input), unicode.IsPrint)
	return strings.Join(strings.Fields(cleaned), " ")
}

// SanitizeEmail lowercases and trims an address and drops markup.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = stripHTML(email)
	return keepRunes(email, func(r rune) bool {
		return unicode.IsPrint(r) && !unicode.IsSpace(r)
	})
}

// SanitizeText escapes HTML in free text such as list descriptions, keeping
// newlines and tabs.
func SanitizeText(input string) string {
	escaped := html.EscapeString(strings.TrimSpace(input))
	return keepRunes(escaped, func(r rune) bool {
		return unicode.IsPrint(r) || r == '\n' || r == '\t'
	})
}

// ValidateAndSanitizeEmail returns the sanitized address or ErrInvalidEmail.
func ValidateAndSanitizeEmail(email string) (string, error) {
	sanitized := SanitizeEmail(email)
	if !IsValidEmail(sanitized) {
		return "", ErrInvalidEmail
	}
	return sanitized, nil
}

func stripHTML(input string) string {
	return htmlTagRe.ReplaceAllString(input, "")
}

func keepRunes(input string, keep func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, input)
}
