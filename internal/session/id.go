package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// idBytes is the entropy per session id (256 bits).
const idBytes = 32

// GenerateID returns an opaque session id. It encodes nothing about the
// account; the binding lives only in the Store.
func GenerateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
