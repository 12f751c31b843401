package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeTTL is the validity window of a one-time code.
const CodeTTL = 10 * time.Minute

const (
	codeMin  = 100000
	codeSpan = 900000 // 100000..999999 inclusive
)

// GenerateCode draws a 6 digit code uniformly from crypto/rand and returns
// it with its absolute expiry.
func GenerateCode(now time.Time) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("cryptox: generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), now.Add(CodeTTL), nil
}
