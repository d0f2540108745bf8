// middleware/keys.go
package middleware

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Keys holds the secrets derived from SESSION_SECRET.
type Keys struct {
	CookieHash  []byte
	CookieBlock []byte
	Token       []byte
}

// DeriveKeys expands secret into independent keys for cookie signing,
// cookie encryption and token signing.
func DeriveKeys(secret string) (Keys, error) {
	if secret == "" {
		return Keys{}, errors.New("session secret is empty")
	}
	var k Keys
	parts := []struct {
		info string
		dst  *[]byte
		size int
	}{
		{"cookie-hash", &k.CookieHash, 64},
		{"cookie-block", &k.CookieBlock, 32},
		{"token", &k.Token, 32},
	}
	for _, p := range parts {
		buf := make([]byte, p.size)
		r := hkdf.New(sha256.New, []byte(secret), []byte("show-do-ingles"), []byte(p.info))
		if _, err := io.ReadFull(r, buf); err != nil {
			return Keys{}, fmt.Errorf("derive %s key: %w", p.info, err)
		}
		*p.dst = buf
	}
	return k, nil
}
