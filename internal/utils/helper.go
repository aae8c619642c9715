package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify converts a product title into a URL-safe slug.
func Slugify(input string) string {
	// Convert input to lowercase
	slug := strings.ToLower(input)

	// Trim whitespace
	slug = strings.TrimSpace(slug)

	// Replace non-alphanumeric characters with dash
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")

	// Remove multiple dashes
	slug = multiDashRegex.ReplaceAllString(slug, "-")

	// Trim leading & trailing dashes
	slug = strings.Trim(slug, "-")

	return slug
}

func StrPtr(s string) *string {
	return &s
}

func FloatPtr(f float64) *float64 {
	return &f
}

func IntPtr(n int) *int {
	return &n
}
