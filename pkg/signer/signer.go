package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Signer creates and validates short-lived HMAC tokens carrying an opaque payload.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New constructs a signer with the provided secret and TTL.
func New(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token of the form payload.expiry.signature.
func (s *Signer) Sign(payload []byte) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret missing")
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	expires := strconv.FormatInt(s.now().Add(s.ttl).Unix(), 10)
	return strings.Join([]string{encoded, expires, s.mac(encoded, expires)}, "."), nil
}

// Verify checks the signature and expiry of token and returns its payload.
func (s *Signer) Verify(token string) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token format")
	}
	encoded, expires, signature := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(s.mac(encoded, expires)), []byte(signature)) {
		return nil, fmt.Errorf("invalid token signature")
	}
	expUnix, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp")
	}
	if s.now().After(time.Unix(expUnix, 0)) {
		return nil, fmt.Errorf("token expired")
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

func (s *Signer) mac(encoded, expires string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encoded + "|" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}
