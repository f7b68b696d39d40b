package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	rePhoneChars = regexp.MustCompile(`[^\d+]`)
	reE164       = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

// TrimAndNormalize collapses runs of whitespace into single spaces and trims
// the ends.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans a guest name field.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeNotes cleans free-text notes without altering case.
func NormalizeNotes(notes string) string {
	return TrimAndNormalize(notes)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips formatting characters and returns the number in
// E.164 form, or "" when the input cannot be a valid number. A leading 00
// international prefix is rewritten to +.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	if strings.HasPrefix(phone, "00") {
		phone = "+" + phone[2:]
	}

	cleaned := rePhoneChars.ReplaceAllString(phone, "")
	if i := strings.LastIndex(cleaned, "+"); i > 0 {
		cleaned = strings.ReplaceAll(cleaned, "+", "")
	}

	if !reE164.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

// NormalizeLabel lowercases a referral-source or stay-reason label.
func NormalizeLabel(label string) string {
	return strings.ToLower(TrimAndNormalize(label))
}
