package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode returns n characters from A-Z0-9 using crypto/rand with
// rand.Int to avoid modulo bias.
func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateBookingID builds the internal booking identifier:
// "BK" + unix millis + 5 random characters. Opaque, globally unique.
func GenerateBookingID() (string, error) {
	suffix, err := randomCode(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK%d%s", time.Now().UnixMilli(), suffix), nil
}

// GenerateConfirmationID builds the short human-facing confirmation
// code, 8 characters A-Z0-9.
func GenerateConfirmationID() (string, error) {
	return randomCode(8)
}
