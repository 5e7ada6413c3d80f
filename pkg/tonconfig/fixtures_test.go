package tonconfig

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func coins(v int64) *big.Int { return big.NewInt(v) }

func hash(fill byte) []byte { return bytes.Repeat([]byte{fill}, 32) }

func directDict(t *testing.T, keyBits uint, values map[uint64]*cell.Cell) *cell.Cell {
	t.Helper()

	d := cell.NewDict(keyBits)
	for k, v := range values {
		require.NoError(t, d.Set(cell.BeginCell().MustStoreUInt(k, keyBits).EndCell(), v))
	}

	return d.AsCell()
}

func hashDict(t *testing.T, values map[byte]*cell.Cell) *cell.Cell {
	t.Helper()

	d := cell.NewDict(256)
	for k, v := range values {
		require.NoError(t, d.Set(cell.BeginCell().MustStoreSlice(hash(k), 256).EndCell(), v))
	}

	return d.AsCell()
}

func empty() *cell.Cell { return cell.BeginCell().EndCell() }

func proposalSetup() *cell.Cell {
	return cell.BeginCell().
		MustStoreUInt(0x36, 8).
		MustStoreUInt(2, 8).MustStoreUInt(7, 8).MustStoreUInt(2, 8).MustStoreUInt(2, 8).
		MustStoreUInt(1000000, 32).MustStoreUInt(10000000, 32).MustStoreUInt(1, 32).MustStoreUInt(500, 32).
		EndCell()
}

func workchainDescr(tag uint64, splitDepth uint64) *cell.Cell {
	b := cell.BeginCell().
		MustStoreUInt(tag, 8).
		MustStoreUInt(1573821854, 32).
		MustStoreUInt(0, 8).MustStoreUInt(0, 8).MustStoreUInt(4, 8).
		MustStoreBoolBit(true).MustStoreBoolBit(true).MustStoreBoolBit(true).
		MustStoreUInt(0, 13).
		MustStoreSlice(hash(0xaa), 256).
		MustStoreSlice(hash(0xbb), 256).
		MustStoreUInt(0, 32).
		MustStoreUInt(1, 4).
		MustStoreInt(-1, 32).
		MustStoreUInt(0, 64)

	if tag == tagWorkchainV2 {
		b.MustStoreUInt(0, 4).
			MustStoreUInt(10, 32).MustStoreUInt(20, 32).MustStoreUInt(30, 32).MustStoreUInt(40, 32).
			MustStoreUInt(splitDepth, 8)
	}

	return b.EndCell()
}

func paramLimits(b *cell.Builder, u, s, h uint64) *cell.Builder {
	return b.MustStoreUInt(tagParamLimits, 8).MustStoreUInt(u, 32).MustStoreUInt(s, 32).MustStoreUInt(h, 32)
}

func blockLimits(u, s, h uint64) *cell.Cell {
	b := cell.BeginCell().MustStoreUInt(tagBlockLimits, 8)
	for i := 0; i < 3; i++ {
		paramLimits(b, u, s, h)
	}

	return b.EndCell()
}

func stakeLimitsVector(t *testing.T) *cell.Cell {
	t.Helper()

	data := []byte{
		0x70, 0x11, 0x0d, 0x93, 0x16, 0xec, 0x00, 0x07, 0x23, 0x86, 0xf2, 0x6f, 0xc1, 0x00,
		0x00, 0x80, 0x10, 0xa7, 0x41, 0xa4, 0x62, 0x78, 0x00, 0x00, 0x00, 0x30, 0x00, 0x00,
	}

	return cell.BeginCell().MustStoreSlice(data, 220).EndCell()
}

// requiredParams builds a minimal config holding every required parameter.
func requiredParams(t *testing.T) Params {
	t.Helper()

	gas := cell.BeginCell().
		MustStoreUInt(tagGasFlat, 8).MustStoreUInt(100, 64).MustStoreUInt(40000, 64).
		MustStoreUInt(tagGasPricesExt, 8).
		MustStoreUInt(26214400, 64).MustStoreUInt(1000000, 64).MustStoreUInt(70000000, 64).
		MustStoreUInt(10000, 64).MustStoreUInt(10000000, 64).MustStoreUInt(100000000, 64).
		MustStoreUInt(1000000000, 64).
		EndCell()

	msgPrices := cell.BeginCell().
		MustStoreUInt(0xea, 8).
		MustStoreUInt(400000, 64).MustStoreUInt(26214400, 64).MustStoreUInt(2621440000, 64).
		MustStoreUInt(98304, 32).MustStoreUInt(21845, 16).MustStoreUInt(21845, 16).
		EndCell()

	return Params{
		ParamConfigAddress:   cell.BeginCell().MustStoreSlice(hash(0x55), 256).EndCell(),
		ParamElectorAddress:  cell.BeginCell().MustStoreSlice(hash(0x33), 256).EndCell(),
		ParamBurningConfig:   cell.BeginCell().MustStoreUInt(0x01, 8).MustStoreBoolBit(false).MustStoreUInt(1, 32).MustStoreUInt(2, 32).EndCell(),
		ParamExtraCurrencies: cell.BeginCell().MustStoreBoolBit(false).EndCell(),
		ParamMandatoryParams: directDict(t, 32, map[uint64]*cell.Cell{0: empty(), 1: empty(), 12: empty()}),
		ParamCriticalParams:  directDict(t, 32, map[uint64]*cell.Cell{0: empty(), 1: empty()}),
		ParamVotingSetup: cell.BeginCell().
			MustStoreUInt(0x91, 8).MustStoreRef(proposalSetup()).MustStoreRef(proposalSetup()).
			EndCell(),
		ParamWorkchains: cell.BeginCell().
			MustStoreBoolBit(true).
			MustStoreRef(directDict(t, 32, map[uint64]*cell.Cell{0: workchainDescr(tagWorkchain, 0)})).
			EndCell(),
		ParamComplaintPricing: cell.BeginCell().
			MustStoreUInt(0x1a, 8).MustStoreBigCoins(coins(1000000000)).MustStoreBigCoins(coins(1)).MustStoreBigCoins(coins(512)).
			EndCell(),
		ParamBlockCreateFees: cell.BeginCell().
			MustStoreUInt(0x6b, 8).MustStoreBigCoins(coins(1700000000)).MustStoreBigCoins(coins(1000000000)).
			EndCell(),
		ParamElectionTimings: cell.BeginCell().
			MustStoreUInt(65536, 32).MustStoreUInt(32768, 32).MustStoreUInt(8192, 32).MustStoreUInt(32768, 32).
			EndCell(),
		ParamValidatorCounts: cell.BeginCell().MustStoreUInt(400, 16).MustStoreUInt(100, 16).MustStoreUInt(13, 16).EndCell(),
		ParamStakeLimits:     stakeLimitsVector(t),
		ParamStoragePrices: directDict(t, 32, map[uint64]*cell.Cell{
			0: cell.BeginCell().
				MustStoreUInt(0xcc, 8).MustStoreUInt(0, 32).
				MustStoreUInt(1, 64).MustStoreUInt(500, 64).MustStoreUInt(1000, 64).MustStoreUInt(500000, 64).
				EndCell(),
		}),
		ParamMasterchainGasPrices:   gas,
		ParamBasechainGasPrices:     gas,
		ParamMasterchainBlockLimits: blockLimits(131072, 524288, 1048576),
		ParamBasechainBlockLimits:   blockLimits(131072, 524288, 1048576),
		ParamMasterchainMsgPrices:   msgPrices,
		ParamBasechainMsgPrices:     msgPrices,
		ParamCatchainConfig: cell.BeginCell().
			MustStoreUInt(tagCatchainV2, 8).MustStoreUInt(0, 7).MustStoreBoolBit(true).
			MustStoreUInt(250, 32).MustStoreUInt(250, 32).MustStoreUInt(1000, 32).MustStoreUInt(7, 32).
			EndCell(),
		ParamConsensusConfig: cell.BeginCell().
			MustStoreUInt(tagConsensusV4, 8).MustStoreUInt(0, 7).MustStoreBoolBit(true).MustStoreUInt(3, 8).
			MustStoreUInt(2000, 32).MustStoreUInt(16000, 32).MustStoreUInt(3, 32).MustStoreUInt(8, 32).
			MustStoreUInt(4, 32).MustStoreUInt(2097152, 32).MustStoreUInt(2097152, 32).
			MustStoreUInt(2, 16).MustStoreUInt(10000, 32).
			EndCell(),
		ParamFundamentalSmc:       cell.BeginCell().MustStoreBoolBit(false).EndCell(),
		ParamSuspendedAddresses:   cell.BeginCell().MustStoreUInt(0x00, 8).MustStoreBoolBit(false).MustStoreUInt(1735693200, 32).EndCell(),
		ParamPrecompiledContracts: cell.BeginCell().MustStoreUInt(0xc0, 8).MustStoreBoolBit(false).EndCell(),
	}
}
