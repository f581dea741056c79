package translation

import "strings"

// StripEOL removes exactly one trailing eol marker from s, if present.
func StripEOL(s, eol string) string {
	if eol == "" {
		return s
	}
	return strings.TrimSuffix(s, eol)
}

// ReverseWords reverses the characters of every space-separated word in s.
// A trailing eol marker stays at the end untouched.
func ReverseWords(s, eol string) string {
	body, hadEOL := s, false
	if eol != "" && strings.HasSuffix(s, eol) {
		body, hadEOL = strings.TrimSuffix(s, eol), true
	}

	words := strings.Split(body, " ")
	for i, w := range words {
		words[i] = reverseRunes(w)
	}

	result := strings.Join(words, " ")
	if hadEOL {
		result += eol
	}
	return result
}

func reverseRunes(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
