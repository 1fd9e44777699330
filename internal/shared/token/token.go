// Package token implements signed correlation tokens for outbound email.
// Each outbound message carries an X-Issue-Token header holding an HMAC of
// the issue ID, so inbound replies can be correlated without trusting
// client-controlled subject lines.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Signer signs and verifies issue correlation tokens.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer from the configured secret.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("correlation token secret is empty")
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns the correlation token for an issue ID, formatted as
// "<issueID>.<hex hmac>". Embedding the ID keeps the token self-describing
// so verification does not require a lookup first.
func (s *Signer) Sign(issueID string) string {
	return issueID + "." + s.mac(issueID)
}

// Verify checks a token and returns the issue ID it was signed for.
func (s *Signer) Verify(tok string) (string, error) {
	idx := strings.LastIndex(tok, ".")
	if idx <= 0 || idx == len(tok)-1 {
		return "", fmt.Errorf("malformed correlation token")
	}
	issueID := tok[:idx]
	sig := tok[idx+1:]

	expected := s.mac(issueID)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", fmt.Errorf("correlation token signature mismatch")
	}
	return issueID, nil
}

func (s *Signer) mac(issueID string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(issueID))
	return hex.EncodeToString(h.Sum(nil))
}
