package internal

// Version is the current pptrans release.
const Version = "0.3.0"

// Truncate shortens s to at most n runes, for use in warnings that quote
// slide text.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
