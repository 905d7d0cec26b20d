package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// lowercaseWords - служебные слова французского языка, которые не капитализируются
var lowercaseWords = map[string]struct{}{
	"de": {}, "du": {}, "des": {}, "le": {}, "la": {}, "les": {},
	"un": {}, "une": {}, "et": {}, "ou": {}, "à": {}, "au": {},
	"aux": {}, "sur": {}, "sous": {}, "dans": {}, "par": {},
}

// Normalize приводит строку к нижнему регистру и удаляет диакритические знаки
// (NFD-декомпозиция + удаление combining marks).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// TitleCase капитализирует каждое слово, кроме французских служебных слов.
// Первое слово капитализируется всегда.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if _, ok := lowercaseWords[w]; ok && i > 0 {
			continue
		}
		words[i] = capitalize(w)
	}

	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
