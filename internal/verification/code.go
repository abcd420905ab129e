package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strconv"
	"strings"
)

const (
	codeMin = 100000
	codeMax = 999999
)

var codeSpan = big.NewInt(codeMax - codeMin + 1)

// GenerateCode returns a 6-digit numeric code drawn uniformly from [100000, 999999].
// Uses crypto/rand for randomness.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// normalize trims surrounding whitespace and folds case.
func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// codeEqual performs a constant-time comparison of the normalized candidate with the stored code.
func codeEqual(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(normalize(stored)), []byte(normalize(candidate))) == 1
}
