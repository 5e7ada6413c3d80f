package walletv2

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func messages(n int) []*cell.Cell {
	res := make([]*cell.Cell, n)
	for i := range res {
		c, err := tlb.ToCell(&tlb.InternalMessage{
			Bounce:  true,
			DstAddr: address.NewAddress(0, 0, bytes.Repeat([]byte{byte(i + 1)}, 32)),
			Amount:  tlb.FromNanoTONU(uint64(i+1) * 100),
			Body:    cell.BeginCell().EndCell(),
		})
		if err != nil {
			panic(err)
		}
		res[i] = c
	}

	return res
}

func TestTransfer(t *testing.T) {
	signer, err := wallet.NewKeySignerFromSeed(bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)

	cases := map[string]struct {
		args           TransferArgs
		wantValidUntil uint32
		wantErr        error
	}{
		"explicit expiration": {
			args: TransferArgs{
				Seqno:      7,
				ValidUntil: 1800000000,
				Transfer:   actions.Batch{Mode: actions.SendModePayGasSeparately, Messages: messages(MaxMessages)},
			},
			wantValidUntil: 1800000000,
		},
		"deployment never expires": {
			args:           TransferArgs{Seqno: 0, ValidUntil: 1800000000, Transfer: actions.Batch{Messages: messages(1)}},
			wantValidUntil: wallet.NoExpiration,
		},
		"too many messages": {
			args:    TransferArgs{Seqno: 7, Transfer: actions.Batch{Messages: messages(MaxMessages + 1)}},
			wantErr: codec.ErrTooManyActions,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body, err := Transfer(context.Background(), signer, tc.args)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			req, err := ParseRequest(body)
			require.NoError(t, err)
			require.Equal(t, tc.args.Seqno, req.Seqno)
			require.Equal(t, tc.wantValidUntil, req.ValidUntil)
			require.Equal(t, tc.args.Transfer.Mode, req.Transfer.Mode)
			require.Len(t, req.Transfer.Messages, len(tc.args.Transfer.Messages))

			payload, err := SigningMessage(tc.args, time.Now())
			require.NoError(t, err)
			require.True(t, wallet.Verify(signer.PublicKey(), payload, req.Signature))
		})
	}
}

func TestSigningMessage_DefaultExpiration(t *testing.T) {
	now := time.Unix(1700000000, 0)

	payload, err := SigningMessage(TransferArgs{Seqno: 1}, now)
	require.NoError(t, err)

	s := payload.BeginParse()
	require.Equal(t, uint64(1), s.MustLoadUInt(32))
	require.Equal(t, uint64(now.Add(wallet.DefaultTimeout).Unix()), s.MustLoadUInt(32))
}

func TestParseRequest_MixedModes(t *testing.T) {
	msgs := messages(2)
	body := cell.BeginCell().
		MustStoreSlice(bytes.Repeat([]byte{0xbb}, wallet.SignatureSize), 512).
		MustStoreUInt(1, 32).MustStoreUInt(1800000000, 32).
		MustStoreUInt(1, 8).MustStoreRef(msgs[0]).
		MustStoreUInt(3, 8).MustStoreRef(msgs[1]).
		EndCell()

	_, err := ParseRequest(body)
	require.ErrorIs(t, err, codec.ErrMixedModeBatch)
}
