// Package locale renders stored values for display in English or Arabic.
//
// Every function here is pure: it takes raw data (clock strings, dates,
// labels) and returns a display string without touching its input. Arabic
// output maps ASCII digits to Arabic-Indic digits as the final step, so raw
// values used for comparisons and lookups are never affected.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is the active display language.
type Locale int

const (
	English Locale = iota
	Arabic
)

// Persisted preference values.
const (
	englishValue = "english"
	arabicValue  = "arabic"
)

// ErrUnknownLanguage is returned by Parse for unsupported languages.
var ErrUnknownLanguage = errors.New("unknown language")

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// Parse accepts the persisted values "english"/"arabic" as well as BCP-47
// tags such as "ar", "ar-EG" or "en-GB". The empty string is English.
func Parse(s string) (Locale, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", englishValue:
		return English, nil
	case arabicValue:
		return Arabic, nil
	}

	tag, err := language.Parse(v)
	if err != nil {
		return English, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return English, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	if idx == 1 {
		return Arabic, nil
	}
	return English, nil
}

// String returns the persisted preference value.
func (l Locale) String() string {
	if l == Arabic {
		return arabicValue
	}
	return englishValue
}

// Toggle returns the other locale.
func (l Locale) Toggle() Locale {
	if l == Arabic {
		return English
	}
	return Arabic
}

// RTL reports whether the locale is written right to left.
func (l Locale) RTL() bool {
	return l == Arabic
}

var arabicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// ArabicDigits replaces each ASCII digit with its Arabic-Indic counterpart
// and leaves every other rune unchanged.
func ArabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return arabicDigits[r-'0']
		}
		return r
	}, s)
}

// Digits applies the locale's numerals to an already formatted string.
func (l Locale) Digits(s string) string {
	if l == Arabic {
		return ArabicDigits(s)
	}
	return s
}
