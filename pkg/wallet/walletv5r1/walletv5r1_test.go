package walletv5r1

import (
	"bytes"
	"context"
	"math/rand"
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

func send(i uint64, mode actions.SendMode) actions.SendMsg {
	return actions.SendMsg{Mode: mode, Message: message(i)}
}

func message(i uint64) *cell.Cell {
	c, err := tlb.ToCell(&tlb.InternalMessage{
		Bounce:  true,
		DstAddr: extAddr(byte(i)),
		Amount:  tlb.FromNanoTONU(i + 1),
		Body:    cell.BeginCell().MustStoreUInt(i, 32).EndCell(),
	})
	if err != nil {
		panic(err)
	}

	return c
}

func extAddr(fill byte) *address.Address {
	return address.NewAddress(0, 0, bytes.Repeat([]byte{fill}, 32))
}

func mixedList(transfers, extended int) []actions.Action {
	list := make([]actions.Action, 0, transfers+extended)
	for i := 0; i < transfers; i++ {
		list = append(list, send(uint64(i), actions.SendModePayGasSeparately))
	}
	for i := 0; i < extended; i++ {
		switch i % 3 {
		case 0:
			list = append(list, actions.AddExtension{Address: extAddr(byte(i))})
		case 1:
			list = append(list, actions.RemoveExtension{Address: extAddr(byte(i))})
		default:
			list = append(list, actions.SetIsPublicKeyEnabled{Enabled: i%2 == 0})
		}
	}

	return list
}

func TestActions_RoundTrip(t *testing.T) {
	cases := map[string][]actions.Action{
		"empty":            nil,
		"single transfer":  mixedList(1, 0),
		"single extended":  mixedList(0, 1),
		"transfers only":   mixedList(4, 0),
		"extended only":    mixedList(0, 5),
		"mixed":            mixedList(3, 4),
		"maximum in total": mixedList(200, 55),
	}

	for name, list := range cases {
		t.Run(name, func(t *testing.T) {
			encoded, err := EncodeActions(list)
			require.NoError(t, err)

			decoded, err := DecodeActions(encoded)
			require.NoError(t, err)
			require.Len(t, decoded, len(list))
			for i := range list {
				require.Equal(t, list[i].Kind(), decoded[i].Kind())
			}

			again, err := EncodeActions(decoded)
			require.NoError(t, err)
			require.Equal(t, encoded.Hash(), again.Hash())
		})
	}
}

func TestStoreActions_Rejects(t *testing.T) {
	cases := map[string]struct {
		list    []actions.Action
		wantErr error
	}{
		"transfer after extended": {
			list:    []actions.Action{actions.SetIsPublicKeyEnabled{}, send(1, 0)},
			wantErr: codec.ErrActionOrder,
		},
		"set code": {
			list:    []actions.Action{actions.SetCode{Code: cell.BeginCell().EndCell()}},
			wantErr: codec.ErrUnsupportedNestedAction,
		},
		"too many": {
			list:    mixedList(256, 0),
			wantErr: codec.ErrTooManyActions,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := cell.BeginCell()
			err := StoreActions(b, tc.list)
			require.ErrorIs(t, err, tc.wantErr)
			require.Zero(t, b.BitsUsed())
		})
	}
}

func TestOrderActions(t *testing.T) {
	list := []actions.Action{
		actions.AddExtension{Address: extAddr(1)},
		send(1, 0),
		actions.SetIsPublicKeyEnabled{},
		send(2, 0),
	}

	ordered := OrderActions(list)
	require.Equal(t, []actions.Kind{
		actions.KindSendMsg, actions.KindSendMsg, actions.KindAddExtension, actions.KindSetIsPublicKeyEnabled,
	}, []actions.Kind{ordered[0].Kind(), ordered[1].Kind(), ordered[2].Kind(), ordered[3].Kind()})
	require.Equal(t, message(1).Hash(), ordered[0].(actions.SendMsg).Message.Hash())

	_, err := EncodeActions(ordered)
	require.NoError(t, err)
}

func TestLoadActions_Rejects(t *testing.T) {
	setCodeList, err := actions.StoreOutList([]actions.Action{actions.SetCode{Code: cell.BeginCell().EndCell()}})
	require.NoError(t, err)

	cases := map[string]struct {
		payload *cell.Cell
		wantErr error
	}{
		"set code in out list": {
			payload: cell.BeginCell().MustStoreMaybeRef(setCodeList).MustStoreBoolBit(false).EndCell(),
			wantErr: codec.ErrUnsupportedNestedAction,
		},
		"unknown extended tag": {
			payload: cell.BeginCell().MustStoreMaybeRef(nil).MustStoreBoolBit(true).MustStoreUInt(0x09, 8).EndCell(),
			wantErr: codec.ErrTagMismatch,
		},
		"truncated address": {
			payload: cell.BeginCell().MustStoreMaybeRef(nil).MustStoreBoolBit(true).MustStoreUInt(0x02, 8).MustStoreUInt(0b10, 2).EndCell(),
			wantErr: codec.ErrStructuralExhaustion,
		},
		"missing presence bit": {
			payload: cell.BeginCell().EndCell(),
			wantErr: codec.ErrStructuralExhaustion,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeActions(tc.payload)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSafeSendMode(t *testing.T) {
	modes := []actions.SendMode{
		actions.SendModeNone,
		actions.SendModePayGasSeparately,
		actions.SendModeIgnoreErrors,
		actions.SendModePayGasSeparately | actions.SendModeIgnoreErrors,
		actions.SendModeCarryAllRemainingAmount,
	}

	for _, mode := range modes {
		once := SafeSendMode(mode, wallet.AuthExternal)
		require.True(t, once.Has(actions.SendModeIgnoreErrors))
		require.Equal(t, once, SafeSendMode(once, wallet.AuthExternal))
		require.Equal(t, mode|actions.SendModeIgnoreErrors, once)

		require.Equal(t, mode, SafeSendMode(mode, wallet.AuthInternal))
		require.Equal(t, mode, SafeSendMode(mode, wallet.AuthExtension))
	}
}

func TestPatchSendModes_KeepsInput(t *testing.T) {
	list := []actions.Action{send(1, actions.SendModePayGasSeparately), actions.SetIsPublicKeyEnabled{}}

	patched := PatchSendModes(list, wallet.AuthExternal)
	require.Equal(t, actions.SendModePayGasSeparately, list[0].(actions.SendMsg).Mode)
	require.Equal(t, actions.SendModePayGasSeparately|actions.SendModeIgnoreErrors, patched[0].(actions.SendMsg).Mode)
	require.Equal(t, list[1], patched[1])

	twice := PatchSendModes(patched, wallet.AuthExternal)
	require.Equal(t, patched, twice)
}

func TestWalletID_KnownValues(t *testing.T) {
	cases := map[string]struct {
		global    int32
		workchain int8
		want      int32
	}{
		"mainnet basechain":   {global: MainnetGlobalID, workchain: 0, want: 2147483409},
		"mainnet masterchain": {global: MainnetGlobalID, workchain: -1, want: 8388369},
		"testnet basechain":   {global: TestnetGlobalID, workchain: 0, want: 2147483645},
		"testnet masterchain": {global: TestnetGlobalID, workchain: -1, want: 8388605},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DefaultWalletID(tc.global, tc.workchain).Encode()
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestWalletID_Symmetry(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	subwallets := []uint16{0, MaxSubwalletNumber, 1, 16384}
	for i := 0; i < 8; i++ {
		subwallets = append(subwallets, uint16(rnd.Intn(MaxSubwalletNumber-1)+1))
	}

	for _, global := range []int32{MainnetGlobalID, TestnetGlobalID} {
		for _, wc := range []int8{0, -1} {
			for _, sub := range subwallets {
				id := WalletID{
					NetworkGlobalID: global,
					Context:         ClientContext{Workchain: wc, Version: VersionV5R1, SubwalletNumber: sub},
				}

				encoded, err := id.Encode()
				require.NoError(t, err)

				decoded, err := DecodeWalletID(encoded, global)
				require.NoError(t, err)
				require.Equal(t, id, decoded)
			}
		}
	}

	for _, counter := range []CustomContext{0, 1, 123456, MaxCustomContext} {
		id := WalletID{NetworkGlobalID: MainnetGlobalID, Context: counter}

		encoded, err := id.Encode()
		require.NoError(t, err)

		decoded, err := DecodeWalletID(encoded, MainnetGlobalID)
		require.NoError(t, err)
		require.Equal(t, id, decoded)
	}
}

func TestWalletID_Errors(t *testing.T) {
	cases := map[string]struct {
		id      WalletID
		wantErr error
	}{
		"subwallet out of range": {
			id:      WalletID{Context: ClientContext{Version: VersionV5R1, SubwalletNumber: MaxSubwalletNumber + 1}},
			wantErr: codec.ErrRangeViolation,
		},
		"custom context out of range": {
			id:      WalletID{Context: CustomContext(MaxCustomContext + 1)},
			wantErr: codec.ErrRangeViolation,
		},
		"unknown version": {
			id:      WalletID{Context: ClientContext{Version: "v6"}},
			wantErr: codec.ErrUnknownWalletVersion,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tc.id.Encode()
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("decode unknown version code", func(t *testing.T) {
		word := uint32(1<<31 | 5<<15)
		_, err := DecodeWalletID(int32(word)^MainnetGlobalID, MainnetGlobalID)
		require.ErrorIs(t, err, codec.ErrUnknownWalletVersion)
	})
}

func TestTransfer_External(t *testing.T) {
	signer, err := wallet.NewKeySignerFromSeed(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)

	args := TransferArgs{
		AuthType: wallet.AuthExternal,
		WalletID: DefaultWalletID(MainnetGlobalID, 0),
		Actions:  []actions.Action{send(1, actions.SendModePayGasSeparately), actions.AddExtension{Address: extAddr(9)}},
	}

	body, err := Transfer(context.Background(), signer, args)
	require.NoError(t, err)

	req, err := ParseRequest(body, MainnetGlobalID)
	require.NoError(t, err)
	require.Equal(t, wallet.OpAuthSignedExternal, req.Opcode)
	require.Equal(t, wallet.NoExpiration, req.ValidUntil)
	require.Equal(t, args.WalletID, *req.WalletID)
	require.Len(t, req.Actions, 2)
	require.Equal(t, actions.SendModePayGasSeparately|actions.SendModeIgnoreErrors, req.Actions[0].(actions.SendMsg).Mode)

	payload, err := SigningMessage(args, time.Time{})
	require.NoError(t, err)
	require.True(t, wallet.Verify(signer.PublicKey(), payload, req.Signature))
}

func TestTransfer_Internal(t *testing.T) {
	signer, err := wallet.NewKeySignerFromSeed(bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)

	body, err := Transfer(context.Background(), signer, TransferArgs{
		AuthType:   wallet.AuthInternal,
		WalletID:   DefaultWalletID(TestnetGlobalID, -1),
		Seqno:      7,
		ValidUntil: 1800000000,
		Actions:    []actions.Action{send(1, actions.SendModePayGasSeparately)},
	})
	require.NoError(t, err)

	req, err := ParseRequest(body, TestnetGlobalID)
	require.NoError(t, err)
	require.Equal(t, wallet.OpAuthSignedInternal, req.Opcode)
	require.Equal(t, uint32(1800000000), req.ValidUntil)
	require.Equal(t, uint32(7), req.Seqno)
	require.Equal(t, actions.SendModePayGasSeparately, req.Actions[0].(actions.SendMsg).Mode)
}

func TestTransfer_Extension(t *testing.T) {
	body, err := Transfer(context.Background(), nil, TransferArgs{
		AuthType: wallet.AuthExtension,
		QueryID:  42,
		Actions:  []actions.Action{send(1, actions.SendModeNone)},
	})
	require.NoError(t, err)

	req, err := ParseRequest(body, MainnetGlobalID)
	require.NoError(t, err)
	require.Equal(t, wallet.OpAuthExtension, req.Opcode)
	require.Equal(t, uint64(42), req.QueryID)
	require.Nil(t, req.WalletID)
	require.Equal(t, actions.SendModeNone, req.Actions[0].(actions.SendMsg).Mode)
}

func TestTransfer_TooManyActions(t *testing.T) {
	_, err := SigningMessage(TransferArgs{
		AuthType: wallet.AuthExternal,
		WalletID: DefaultWalletID(MainnetGlobalID, 0),
		Actions:  mixedList(255, 1),
	}, time.Now())
	require.ErrorIs(t, err, codec.ErrTooManyActions)
}
