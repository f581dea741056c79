package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Delimiter separates run texts before hashing. U+001F cannot occur in
// presentation XML, so joined texts never collide across run boundaries.
const Delimiter = "\x1f"

// PageHash computes the fingerprint of a page from its run texts in
// extraction order.
func PageHash(texts []string) string {
	sum := sha256.Sum256([]byte(strings.Join(texts, Delimiter)))
	return hex.EncodeToString(sum[:])
}
