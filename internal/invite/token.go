package invite

import (
	"crypto/rand"
	"encoding/hex"
)

// newInviteToken returns 32 bytes of entropy hex-encoded. The token is the
// whole credential for joining a challenge, so it must be unguessable.
func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
