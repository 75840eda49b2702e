package subscriptions

import (
	"regexp"
	"strings"
)

// The email check deliberately stays loose: anything without whitespace or a
// stray "@", with a dot somewhere in the domain part, is accepted.
var (
	emailRegex            = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telegramUsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{5,32}$`)
)

// IsValidEmail reports whether email has an acceptable format.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeTelegramUsername strips a single leading "@".
func NormalizeTelegramUsername(username string) string {
	return strings.TrimPrefix(username, "@")
}

// IsValidTelegramUsername reports whether username (with or without a leading
// "@") is 5-32 characters of letters, digits and underscores.
func IsValidTelegramUsername(username string) bool {
	return telegramUsernameRegex.MatchString(NormalizeTelegramUsername(username))
}
