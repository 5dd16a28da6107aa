package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex sha256 of parts joined with a unit separator, so
// ("ab","c") and ("a","bc") hash differently.
func Hash(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0x1f})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
