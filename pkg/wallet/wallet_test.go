package wallet

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func testSigner(t *testing.T) *KeySigner {
	t.Helper()

	signer, err := NewKeySignerFromSeed(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)

	return signer
}

func TestValidUntil(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cases := map[string]struct {
		seqno   uint32
		timeout uint32
		want    uint32
	}{
		"deployment never expires": {seqno: 0, timeout: 123, want: NoExpiration},
		"explicit timeout":         {seqno: 5, timeout: 1700000500, want: 1700000500},
		"default timeout":          {seqno: 5, want: 1700000060},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, ValidUntil(tc.seqno, tc.timeout, now))
		})
	}
}

func TestAuthType(t *testing.T) {
	op, err := AuthExternal.SignedOpcode()
	require.NoError(t, err)
	require.Equal(t, OpAuthSignedExternal, op)

	op, err = AuthInternal.SignedOpcode()
	require.NoError(t, err)
	require.Equal(t, OpAuthSignedInternal, op)

	_, err = AuthExtension.SignedOpcode()
	require.Error(t, err)

	require.Error(t, AuthType("relay").Validate())
}

func TestSignatureLayouts(t *testing.T) {
	signer := testSigner(t)
	payload := cell.BeginCell().
		MustStoreUInt(0xdeadbeef, 32).
		MustStoreRef(cell.BeginCell().MustStoreUInt(1, 8).EndCell()).
		EndCell()

	t.Run("front", func(t *testing.T) {
		body, err := SignBody(context.Background(), signer, payload, PackSignatureFront)
		require.NoError(t, err)

		got, sig, err := SplitSignatureFront(body)
		require.NoError(t, err)
		require.Equal(t, payload.Hash(), got.Hash())
		require.True(t, Verify(signer.PublicKey(), got, sig))
	})

	t.Run("tail", func(t *testing.T) {
		body, err := SignBody(context.Background(), signer, payload, PackSignatureTail)
		require.NoError(t, err)

		got, sig, err := SplitSignatureTail(body)
		require.NoError(t, err)
		require.Equal(t, payload.Hash(), got.Hash())
		require.True(t, Verify(signer.PublicKey(), got, sig))
	})

	t.Run("bad signature size", func(t *testing.T) {
		_, err := PackSignatureTail(payload, []byte{1, 2, 3})
		require.Error(t, err)
		_, err = PackSignatureFront(payload, []byte{1, 2, 3})
		require.Error(t, err)
	})

	t.Run("short body", func(t *testing.T) {
		_, _, err := SplitSignatureTail(payload)
		require.Error(t, err)
	})
}

func TestNewKeySigner(t *testing.T) {
	_, err := NewKeySigner([]byte{1})
	require.Error(t, err)

	_, err = NewKeySignerFromSeed([]byte{1})
	require.Error(t, err)
}
