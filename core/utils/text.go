package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// Sanitize trims the input and collapses internal whitespace runs into one space.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func CharLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Slugify makes a url slug; an empty result falls back to a random id.
func Slugify(s string) string {
	out := slug.Make(s)
	if out == "" {
		return strings.ToLower(GenerateID())
	}
	return out
}

func UniqueSlug(s string) string {
	return Slugify(s) + "-" + strings.ToLower(GenerateID())
}
