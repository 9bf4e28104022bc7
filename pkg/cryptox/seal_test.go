package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	pass := []byte("correct horse battery staple")
	msg := []byte(`{"token":"tok1"}`)

	sealed, err := Seal(pass, msg)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "tok1")

	opened, err := Open(pass, sealed)
	require.NoError(t, err)
	require.Equal(t, msg, opened)
}

func TestSealUsesFreshSalt(t *testing.T) {
	pass := []byte("pw")
	a, err := Seal(pass, []byte("same"))
	require.NoError(t, err)
	b, err := Seal(pass, []byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestOpenFailures(t *testing.T) {
	sealed, err := Seal([]byte("pw"), []byte("secret"))
	require.NoError(t, err)

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := Open([]byte("nope"), sealed)
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("tampered", func(t *testing.T) {
		bad := append([]byte(nil), sealed...)
		bad[len(bad)-1] ^= 0xff
		_, err := Open([]byte("pw"), bad)
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Open([]byte("pw"), sealed[:10])
		require.ErrorIs(t, err, ErrDecrypt)
	})
}
