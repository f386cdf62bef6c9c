// Package identity derives the durable primary key for a feed entry from
// its canonical link.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrEmptyLink is returned when an entry has no usable link. Hashing an
// empty value would collapse every linkless entry onto one synthetic id,
// so the caller must drop the entry instead.
var ErrEmptyLink = errors.New("entry link is empty")

// Digest returns the lowercase hex SHA-256 of the link's UTF-8 bytes.
// Deterministic: the same link always yields the same id.
func Digest(link string) (string, error) {
	if strings.TrimSpace(link) == "" {
		return "", ErrEmptyLink
	}
	sum := sha256.Sum256([]byte(link))
	return hex.EncodeToString(sum[:]), nil
}
