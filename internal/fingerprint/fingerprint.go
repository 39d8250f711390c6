// Package fingerprint derives the stable digests stored with each signature:
// an identity fingerprint for out-of-band duplicate auditing and an IP hash
// kept instead of the raw address.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxIPLength bounds the raw address before hashing and rate-limit keying.
const maxIPLength = 40

// Chained transformers buffer internally, so a fresh chain is built per call
// rather than shared across request goroutines.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Canonical trims, collapses whitespace runs to single spaces, and removes
// diacritical marks, so "  Núria " and "Nuria" canonicalize identically.
func Canonical(s string) string {
	stripped, _, err := transform.String(stripMarks(), s)
	if err != nil {
		stripped = s
	}

	return strings.Join(strings.Fields(stripped), " ")
}

// Signature hashes the canonicalized identity fields joined with "|" in a
// fixed order. Identical identities always produce the same digest.
func Signature(nom, cognom1, cognom2, dataNaixement, tipusID string) string {
	canonical := strings.Join([]string{
		Canonical(nom),
		Canonical(cognom1),
		Canonical(cognom2),
		dataNaixement,
		strings.ToUpper(tipusID),
	}, "|")

	return sha256Hex(canonical)
}

// TruncateIP caps the originating address string before it is used as a
// rate-limit key or hashed for storage.
func TruncateIP(addr string) string {
	if len(addr) > maxIPLength {
		return addr[:maxIPLength]
	}

	return addr
}

// IP hashes the truncated originating address.
func IP(addr string) string {
	return sha256Hex(TruncateIP(addr))
}

func sha256Hex(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
