package models

import (
	"strings"
	"unicode"
)

var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
	"â", "a", "î", "i", "û", "u",
)

// Fold lowercases s and maps Turkish letters to their ASCII base, so "Şeftali",
// "ŞEFTALİ" and "seftali" compare equal.
func Fold(s string) string {
	return strings.ToLower(turkishFold.Replace(s))
}

// Slugify turns a display name into a URL segment: Turkish letters are folded to
// ASCII, everything outside [a-z0-9] becomes a single hyphen.
func Slugify(s string) string {
	s = Fold(s)

	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
