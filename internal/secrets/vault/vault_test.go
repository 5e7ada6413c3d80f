package vault

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x07}, 32)

	for name, tc := range map[string]struct {
		data    map[string]interface{}
		wantErr bool
	}{
		"valid": {
			data: map[string]interface{}{valueField: "0x" + string(bytes.Repeat([]byte("07"), 32))},
		},
		"missing value": {
			data:    map[string]interface{}{},
			wantErr: true,
		},
		"not a string": {
			data:    map[string]interface{}{valueField: 42},
			wantErr: true,
		},
		"no prefix": {
			data:    map[string]interface{}{valueField: string(bytes.Repeat([]byte("07"), 32))},
			wantErr: true,
		},
		"short seed": {
			data:    map[string]interface{}{valueField: "0x0707"},
			wantErr: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := decodeSeed(tc.data)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, seed, got)
		})
	}
}

func TestStorage_Key(t *testing.T) {
	require.Equal(t, "ton-kit/wallet_seed", NewStorage(nil, "ton-kit").key(keyWalletSeed))
	require.Equal(t, "wallet_seed", NewStorage(nil, "").key(keyWalletSeed))
}
