package profanity

import (
	"errors"
	"testing"

	"auctionary/internal/auctionerrors"

	"github.com/stretchr/testify/require"
)

func TestFilter_Contains(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		text     string
		expected bool
	}{
		{"Vintage copper lamp", false},
		{"", false},
		{"   ", false},
		{"what a shit lamp", true},
		{"FUCK", true},
		{"Shit!", true},
		{"sh1t condition", true},
		{"total asshole", true},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			require.Equal(t, tc.expected, f.Contains(tc.text))
		})
	}
}

func TestFilter_ContainsMatchesWholeWordsOnly(t *testing.T) {
	f := NewFilter()

	titles := []string{
		"Charles Dickens first edition",
		"Essex",
		"Essex cottage painting",
		"Cockpit",
		"Cockpit instrument panel",
		"Sextant, brass",
		"Assorted buttons",
		"Pen Island",
		"Pen Island souvenir",
		"Hancock signed photo",
		"Lot of 5 h1ts",
		"Scunthorpe United scarf",
		"Classic bass guitar",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			t.Parallel()
			require.False(t, f.Contains(title))
			require.NoError(t, f.Check(Field{Name: "name", Text: title}))
		})
	}
}

func TestFilter_CheckNamesFirstOffendingField(t *testing.T) {
	f := NewFilter()

	require.NoError(t, f.Check(Field{Name: "name", Text: "Lamp"}, Field{Name: "description", Text: "Works well"}))

	err := f.Check(Field{Name: "name", Text: "Lamp"}, Field{Name: "description", Text: "shit condition"})
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrContentRejected))

	var contentErr *auctionerrors.ContentError
	require.True(t, errors.As(err, &contentErr))
	require.Equal(t, "description", contentErr.Field)
	require.Equal(t, "inappropriate language detected in description", err.Error())
}
