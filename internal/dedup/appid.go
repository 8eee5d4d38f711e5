package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenerateApplicationID derives a stable identifier from the normalized
// company, role title, posting URL and applied date. The same application
// observed twice hashes to the same id regardless of casing or padding.
func GenerateApplicationID(company, roleTitle, jobURL, appliedDate string) string {
	parts := []string{company, roleTitle, jobURL, appliedDate}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "app_" + hex.EncodeToString(sum[:])[:16]
}
