package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_SignAndVerify(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	tok := signer.Sign("iss_a1B2c3D4e5F6")
	issueID, err := signer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "iss_a1B2c3D4e5F6", issueID)
}

func TestSigner_VerifyRejectsTamperedToken(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	tok := signer.Sign("iss_a1B2c3D4e5F6")

	// Swap the issue ID while keeping the original signature.
	tampered := "iss_Zz9Yy8Xx7Ww6" + tok[len("iss_a1B2c3D4e5F6"):]
	_, err = signer.Verify(tampered)
	assert.Error(t, err)
}

func TestSigner_VerifyRejectsWrongSecret(t *testing.T) {
	signer, err := NewSigner("secret-one")
	require.NoError(t, err)
	other, err := NewSigner("secret-two")
	require.NoError(t, err)

	tok := signer.Sign("iss_a1B2c3D4e5F6")
	_, err = other.Verify(tok)
	assert.Error(t, err)
}

func TestSigner_VerifyRejectsMalformed(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	for _, tok := range []string{"", "nodot", ".sigonly", "idonly."} {
		_, err := signer.Verify(tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := NewSigner("")
	assert.Error(t, err)
}
