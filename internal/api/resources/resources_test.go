package resources

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv4"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func TestParseGeneration(t *testing.T) {
	for _, g := range []Generation{GenerationV1, GenerationV2, GenerationV3, GenerationV4, GenerationV5Beta, GenerationV5R1} {
		got, err := ParseGeneration(string(g))
		require.NoError(t, err)
		require.Equal(t, g, got)
	}

	_, err := ParseGeneration("v3r2")
	require.ErrorIs(t, err, codec.ErrUnknownWalletVersion)
}

func TestDecodeActions_V4(t *testing.T) {
	plugin := address.NewAddress(0, 0, bytes.Repeat([]byte{0x42}, 32))
	c, err := walletv4.EncodeAction(walletv4.AddPlugin{
		Address:       plugin,
		ForwardAmount: big.NewInt(50000000),
		QueryID:       9,
	})
	require.NoError(t, err)

	list, err := DecodeActions(GenerationV4, c)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, walletv4.KindAddPlugin, list[0].Type)
	require.Equal(t, plugin.String(), list[0].Address)
	require.Equal(t, "50000000", list[0].ForwardAmount)
	require.Equal(t, uint64(9), *list[0].QueryID)
}

func TestDecodeActions_Batch(t *testing.T) {
	msg, err := tlb.ToCell(&tlb.InternalMessage{
		Bounce:  true,
		DstAddr: address.NewAddress(0, 0, bytes.Repeat([]byte{0x24}, 32)),
		Amount:  tlb.FromNanoTONU(1000),
		Body:    cell.BeginCell().EndCell(),
	})
	require.NoError(t, err)

	two := actions.Batch{Mode: actions.SendModePayGasSeparately, Messages: []*cell.Cell{msg, msg}}
	c, err := actions.EncodeBatch(two, actions.MaxBatchMessages)
	require.NoError(t, err)

	for _, gen := range []Generation{GenerationV2, GenerationV3} {
		list, err := DecodeActions(gen, c)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, actions.KindSendMsg, list[0].Type)
		require.Equal(t, uint8(1), *list[0].Mode)
		require.Equal(t, []string{Boc(msg), Boc(msg)}, list[0].Messages)
	}

	_, err = DecodeActions(GenerationV1, c)
	require.ErrorIs(t, err, codec.ErrTooManyActions)
}

func TestFromAction(t *testing.T) {
	msg := cell.BeginCell().MustStoreUInt(1, 1).EndCell()

	res := FromAction(actions.SendMsg{Mode: actions.SendModeIgnoreErrors, Message: msg})
	require.Equal(t, actions.KindSendMsg, res.Type)
	require.Equal(t, uint8(2), *res.Mode)
	require.Equal(t, []string{Boc(msg)}, res.Messages)

	res = FromAction(actions.SetIsPublicKeyEnabled{Enabled: true})
	require.True(t, *res.Enabled)
	require.Nil(t, res.Mode)
}

func TestFromWalletID(t *testing.T) {
	custom := walletv5r1.WalletID{NetworkGlobalID: walletv5r1.MainnetGlobalID, Context: walletv5r1.CustomContext(77)}
	value, err := custom.Encode()
	require.NoError(t, err)

	res := FromWalletID(value, custom)
	require.Equal(t, ContextCustom, res.ContextType)
	require.Equal(t, uint32(77), *res.CustomContext)
	require.Nil(t, res.Workchain)

	res = FromWalletID(2147483409, walletv5r1.DefaultWalletID(walletv5r1.MainnetGlobalID, 0))
	require.Equal(t, ContextClient, res.ContextType)
	require.Equal(t, walletv5r1.VersionV5R1, *res.Version)
}
