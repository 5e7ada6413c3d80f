package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func TestReader_Exhaustion(t *testing.T) {
	c := cell.BeginCell().MustStoreUInt(0xab, 8).EndCell()

	r := NewCellReader(c)
	require.Equal(t, uint64(0xab), r.Uint(8))
	require.NoError(t, r.Err())

	require.Equal(t, uint64(0), r.Uint(1))
	require.ErrorIs(t, r.Err(), ErrStructuralExhaustion)

	// sticky: later reads keep the first error
	require.False(t, r.Bit())
	require.Nil(t, r.RefCell())
	require.ErrorIs(t, r.Err(), ErrStructuralExhaustion)
}

func TestReader_MissingRef(t *testing.T) {
	r := NewCellReader(cell.BeginCell().EndCell())

	sub := r.Ref()
	require.ErrorIs(t, r.Err(), ErrStructuralExhaustion)
	require.ErrorIs(t, sub.Err(), ErrStructuralExhaustion)
	require.Equal(t, uint64(0), sub.Uint(8))
}

func TestReader_ExpectTag(t *testing.T) {
	cases := map[string]struct {
		tag      uint64
		bits     uint
		accepted []uint64
		wantErr  error
	}{
		"single accepted": {tag: 0xc4, bits: 8, accepted: []uint64{0xc4}},
		"second accepted": {tag: 0xa7, bits: 8, accepted: []uint64{0xa6, 0xa7}},
		"nibble":          {tag: 0x0, bits: 4, accepted: []uint64{0x0}},
		"mismatch":        {tag: 0xff, bits: 8, accepted: []uint64{0xa6, 0xa7}, wantErr: ErrTagMismatch},
		"wide mismatch":   {tag: 0x12345678, bits: 32, accepted: []uint64{0x8e81278a}, wantErr: ErrTagMismatch},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := cell.BeginCell().MustStoreUInt(tc.tag, tc.bits).EndCell()
			r := NewCellReader(c)

			got := r.ExpectTag(tc.bits, "param 1", tc.accepted...)
			if tc.wantErr != nil {
				require.ErrorIs(t, r.Err(), tc.wantErr)
				require.Contains(t, r.Err().Error(), "param 1")
				return
			}

			require.NoError(t, r.Err())
			require.Equal(t, tc.tag, got)
		})
	}
}

func TestWriterReader_Fields(t *testing.T) {
	amount, _ := new(big.Int).SetString("10000000000000000", 10)

	w := NewWriter().
		Uint(7, 3).
		Int(-5, 8).
		Bit(true).
		Bytes([]byte{1, 2, 3}).
		Coins(amount).
		Ref(cell.BeginCell().MustStoreUInt(42, 16).EndCell())
	c, err := w.EndCell()
	require.NoError(t, err)

	r := NewCellReader(c)
	require.Equal(t, uint64(7), r.Uint(3))
	require.Equal(t, int64(-5), r.Int(8))
	require.True(t, r.Bit())
	require.Equal(t, []byte{1, 2, 3}, r.Bytes(3))
	require.Equal(t, 0, amount.Cmp(r.Coins()))

	sub := r.Ref()
	require.Equal(t, uint64(42), sub.Uint(16))
	require.NoError(t, sub.Err())
	require.NoError(t, r.Err())
	require.Equal(t, uint(0), r.BitsLeft())
	require.Equal(t, 0, r.RefsLeft())
}

func TestReader_Rest(t *testing.T) {
	c := cell.BeginCell().
		MustStoreUInt(0x11, 8).
		MustStoreUInt(0x2233, 16).
		MustStoreRef(cell.BeginCell().EndCell()).
		EndCell()

	r := NewCellReader(c)
	r.Uint(8)
	rest := r.Rest()
	require.NoError(t, r.Err())
	require.Equal(t, uint(0), r.BitsLeft())
	require.Equal(t, 0, r.RefsLeft())

	rr := NewCellReader(rest)
	require.Equal(t, uint64(0x2233), rr.Uint(16))
	require.Equal(t, 1, rr.RefsLeft())
}
