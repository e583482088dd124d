// Package profanity rejects user-supplied text containing disallowed language.
package profanity

import (
	"strings"
	"unicode"

	goaway "github.com/TwiN/go-away"

	"auctionary/internal/auctionerrors"
)

// Field is a named piece of user text to check
type Field struct {
	Name string
	Text string
}

// Filter checks text against a profanity dictionary
type Filter struct {
	detector *goaway.ProfanityDetector
}

// NewFilter creates a filter using the default dictionary
func NewFilter() *Filter {
	return &Filter{detector: goaway.NewProfanityDetector().WithSanitizeSpaces(false)}
}

// Contains reports whether any whole word of text is in the dictionary.
// Words are runs of letters and digits, so "Essex" or "Cockpit" pass while
// "shit" or leet spellings like "sh1t" do not.
func (f *Filter) Contains(text string) bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		if f.profaneWord(word) {
			return true
		}
	}
	return false
}

// profaneWord reports whether the detector censors every rune of word
func (f *Filter) profaneWord(word string) bool {
	if !f.detector.IsProfane(word) {
		return false
	}
	return strings.Trim(f.detector.Censor(word), "*") == ""
}

// Check returns a *auctionerrors.ContentError naming the first offending field, or nil
func (f *Filter) Check(fields ...Field) error {
	for _, field := range fields {
		if f.Contains(field.Text) {
			return &auctionerrors.ContentError{Field: field.Name}
		}
	}
	return nil
}
