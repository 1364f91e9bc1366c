package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pocketbase/pocketbase"
)

// Slugify lowercases a name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug derives a slug from name that is unique within the given
// collection's slug field. Collisions get a numeric suffix: -2, -3 and so
// on.
func UniqueSlug(app *pocketbase.PocketBase, collection, name string) string {
	base := Slugify(name)
	slug := base
	for n := 2; slugTaken(app, collection, slug); n++ {
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	return slug
}

func slugTaken(app *pocketbase.PocketBase, collection, slug string) bool {
	_, err := app.FindFirstRecordByFilter(
		collection,
		"slug = {:slug}",
		map[string]any{"slug": slug},
	)
	return err == nil
}
