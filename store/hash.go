package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// FragmentHash returns the content-addressed key a CachedPattern row is
// keyed by: a fragment's source text together with the placeholder prefix
// it was compiled under (the same fragment means something different
// under a different prefix).
func FragmentHash(fragment, placeholderPrefix string) string {
	h := sha256.New()
	h.Write([]byte(placeholderPrefix))
	h.Write([]byte{0})
	h.Write([]byte(fragment))
	return hex.EncodeToString(h.Sum(nil))
}
