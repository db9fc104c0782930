package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealRoundTrip(t *testing.T) {
	s, err := NewSealer("secret")
	require.NoError(t, err)

	sealed, err := s.Seal("token-value")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "token-value")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token-value", plain)
}

func TestOpenRejectsForeignKey(t *testing.T) {
	a, _ := NewSealer("a")
	b, _ := NewSealer("b")
	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, ErrUnsealable)

	_, err = a.Open("not-base64!!")
	assert.ErrorIs(t, err, ErrUnsealable)
}

func TestNewSealerRequiresSecret(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}
