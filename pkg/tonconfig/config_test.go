package tonconfig

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func badTag() *cell.Slice {
	return cell.BeginCell().
		MustStoreUInt(0xff, 8).
		MustStoreSlice(bytes.Repeat([]byte{0xff}, 96), 768).
		EndCell().
		BeginParse()
}

func TestParseParam_TagRejection(t *testing.T) {
	tagged := []int32{
		ParamBurningConfig, ParamGlobalVersion, ParamVotingSetup, ParamComplaintPricing,
		ParamBlockCreateFees, ParamMasterchainGasPrices, ParamBasechainGasPrices,
		ParamMasterchainBlockLimits, ParamBasechainBlockLimits, ParamMasterchainMsgPrices,
		ParamBasechainMsgPrices, ParamCatchainConfig, ParamConsensusConfig,
		ParamPrevValidators, ParamPrevTempValidators, ParamCurrentValidators,
		ParamCurrentTempValidators, ParamNextValidators, ParamNextTempValidators,
		ParamMisbehaviourPunishment, ParamSuspendedAddresses, ParamPrecompiledContracts,
		ParamEthereumTokenBridge, ParamBinanceTokenBridge, ParamPolygonTokenBridge,
	}

	for _, id := range tagged {
		_, err := ParseParam(id, badTag())
		require.ErrorIs(t, err, codec.ErrTagMismatch, "param %d", id)
		require.Contains(t, err.Error(), "param ")
	}
}

func TestParseParam_NestedTagRejection(t *testing.T) {
	badEntry := cell.BeginCell().MustStoreUInt(0xff, 8).MustStoreSlice(bytes.Repeat([]byte{0}, 64), 512).EndCell()

	cases := map[string]struct {
		id    int32
		param *cell.Cell
	}{
		"workchain descriptor": {
			id:    ParamWorkchains,
			param: cell.BeginCell().MustStoreBoolBit(true).MustStoreRef(directDict(t, 32, map[uint64]*cell.Cell{0: badEntry})).EndCell(),
		},
		"storage prices entry": {
			id:    ParamStoragePrices,
			param: directDict(t, 32, map[uint64]*cell.Cell{0: badEntry}),
		},
		"proposal setup": {
			id:    ParamVotingSetup,
			param: cell.BeginCell().MustStoreUInt(0x91, 8).MustStoreRef(badEntry).MustStoreRef(proposalSetup()).EndCell(),
		},
		"param limits": {
			id:    ParamBasechainBlockLimits,
			param: cell.BeginCell().MustStoreUInt(tagBlockLimits, 8).MustStoreUInt(0xff, 8).MustStoreSlice(bytes.Repeat([]byte{0}, 36), 288).EndCell(),
		},
		"inner gas prices": {
			id: ParamBasechainGasPrices,
			param: cell.BeginCell().
				MustStoreUInt(tagGasFlat, 8).MustStoreUInt(0, 64).MustStoreUInt(0, 64).
				MustStoreUInt(tagGasFlat, 8).MustStoreSlice(bytes.Repeat([]byte{0}, 56), 448).
				EndCell(),
		},
		"precompiled contract": {
			id: ParamPrecompiledContracts,
			param: cell.BeginCell().MustStoreUInt(0xc0, 8).MustStoreBoolBit(true).
				MustStoreRef(hashDict(t, map[byte]*cell.Cell{1: badEntry})).EndCell(),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseParam(tc.id, tc.param.BeginParse())
			require.ErrorIs(t, err, codec.ErrTagMismatch)
		})
	}
}

func TestParseStakeLimits_KnownVector(t *testing.T) {
	minStake, _ := new(big.Int).SetString("300000000000000", 10)
	maxStake, _ := new(big.Int).SetString("10000000000000000", 10)
	minTotalStake, _ := new(big.Int).SetString("75000000000000000", 10)

	got, err := ParseStakeLimits(stakeLimitsVector(t).BeginParse())
	require.NoError(t, err)
	require.Equal(t, 0, minStake.Cmp(got.MinStake))
	require.Equal(t, 0, maxStake.Cmp(got.MaxStake))
	require.Equal(t, 0, minTotalStake.Cmp(got.MinTotalStake))
	require.Equal(t, uint32(196608), got.MaxStakeFactor)
}

func TestPolicies(t *testing.T) {
	cases := map[string]struct {
		id      int32
		wantErr error
		check   func(t *testing.T, v interface{})
	}{
		"required address": {id: ParamConfigAddress, wantErr: codec.ErrMissingParameter},
		"required workchains": {id: ParamWorkchains, wantErr: codec.ErrMissingParameter},
		"optional address": {
			id: ParamDNSRootAddress,
			check: func(t *testing.T, v interface{}) {
				require.Nil(t, v.(interface{ String() string }))
			},
		},
		"optional mint prices": {
			id: ParamMintPrices,
			check: func(t *testing.T, v interface{}) {
				require.Nil(t, v.(*MintPrices))
			},
		},
		"global version default": {
			id: ParamGlobalVersion,
			check: func(t *testing.T, v interface{}) {
				require.Equal(t, GlobalVersion{}, v.(GlobalVersion))
			},
		},
		"optional validator set": {
			id: ParamNextValidators,
			check: func(t *testing.T, v interface{}) {
				require.Nil(t, v.(*ValidatorSet))
			},
		},
		"optional jetton bridge": {
			id: ParamPolygonTokenBridge,
			check: func(t *testing.T, v interface{}) {
				require.Nil(t, v.(*JettonBridgeParams))
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := ParseParam(tc.id, nil)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			tc.check(t, v)
		})
	}
}

func TestKnownParams_HaveDecoders(t *testing.T) {
	for _, id := range KnownParams() {
		_, ok := decoders[id]
		require.True(t, ok, "param %d", id)
	}
	require.Len(t, decoders, len(policies))
}

func TestParamLimits_Ordering(t *testing.T) {
	cases := map[string]struct {
		u, s, h uint32
		wantErr bool
	}{
		"ordered":            {u: 1, s: 2, h: 3},
		"equal":              {u: 5, s: 5, h: 5},
		"underload too high": {u: 3, s: 2, h: 4, wantErr: true},
		"soft too high":      {u: 1, s: 5, h: 4, wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			limits, err := NewParamLimits(tc.u, tc.s, tc.h)
			if tc.wantErr {
				require.ErrorIs(t, err, codec.ErrRangeViolation)
			} else {
				require.NoError(t, err)
				require.Equal(t, ParamLimits{Underload: tc.u, SoftLimit: tc.s, HardLimit: tc.h}, limits)
			}

			_, err = ParseBlockLimits(ParamBasechainBlockLimits,
				blockLimits(uint64(tc.u), uint64(tc.s), uint64(tc.h)).BeginParse())
			if tc.wantErr {
				require.ErrorIs(t, err, codec.ErrRangeViolation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseBlockLimits_V2(t *testing.T) {
	b := cell.BeginCell().MustStoreUInt(tagBlockLimitsV2, 8)
	for i := 0; i < 4; i++ {
		paramLimits(b, 1, 2, 3)
	}
	b.MustStoreUInt(tagMsgQueue, 8).MustStoreUInt(2097152, 32).MustStoreUInt(8192, 32)

	got, err := ParseBlockLimits(ParamMasterchainBlockLimits, b.EndCell().BeginParse())
	require.NoError(t, err)
	require.NotNil(t, got.CollatedData)
	require.Equal(t, &ImportedMsgQueueLimits{MaxBytes: 2097152, MaxMsgs: 8192}, got.ImportedMsgQueue)
}

func TestParseWorkchains(t *testing.T) {
	wrap := func(descr *cell.Cell) *cell.Slice {
		return cell.BeginCell().
			MustStoreBoolBit(true).
			MustStoreRef(directDict(t, 32, map[uint64]*cell.Cell{0: descr})).
			EndCell().
			BeginParse()
	}

	t.Run("basic descriptor has no extension", func(t *testing.T) {
		d, err := ParseWorkchains(wrap(workchainDescr(tagWorkchain, 0)))
		require.NoError(t, err)
		require.Equal(t, 1, d.Len())

		wc, ok := d.Get(0)
		require.True(t, ok)
		require.Nil(t, wc.Extension)
		require.Equal(t, uint8(4), wc.MaxSplit)
		require.Equal(t, int32(-1), wc.Format.VMVersion)
	})

	t.Run("v2 descriptor carries split timings", func(t *testing.T) {
		d, err := ParseWorkchains(wrap(workchainDescr(tagWorkchainV2, 63)))
		require.NoError(t, err)

		wc, _ := d.Get(0)
		require.NotNil(t, wc.Extension)
		require.Equal(t, uint8(63), wc.Extension.PersistentStateSplitDepth)
		require.Equal(t, uint32(40), wc.Extension.SplitMergeTimings.MaxSplitMergeDelay)
	})

	t.Run("split depth above 63", func(t *testing.T) {
		_, err := ParseWorkchains(wrap(workchainDescr(tagWorkchainV2, 64)))
		require.ErrorIs(t, err, codec.ErrRangeViolation)
	})

	t.Run("empty dictionary", func(t *testing.T) {
		_, err := ParseWorkchains(cell.BeginCell().MustStoreBoolBit(false).EndCell().BeginParse())
		require.ErrorIs(t, err, codec.ErrRangeViolation)
	})
}

func TestParseValidatorCounts_Ranges(t *testing.T) {
	cases := map[string]struct {
		max, main, min uint64
		wantErr        bool
	}{
		"valid":          {max: 400, main: 100, min: 13},
		"main above max": {max: 10, main: 11, min: 1, wantErr: true},
		"min above main": {max: 10, main: 5, min: 6, wantErr: true},
		"zero min":       {max: 10, main: 5, min: 0, wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := cell.BeginCell().MustStoreUInt(tc.max, 16).MustStoreUInt(tc.main, 16).MustStoreUInt(tc.min, 16).EndCell()

			_, err := ParseValidatorCounts(c.BeginParse())
			if tc.wantErr {
				require.ErrorIs(t, err, codec.ErrRangeViolation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseValidatorSet(t *testing.T) {
	descr := func(tag uint64, weight uint64) *cell.Cell {
		b := cell.BeginCell().
			MustStoreUInt(tag, 8).
			MustStoreUInt(tagEd25519PubKey, 32).
			MustStoreSlice(hash(byte(weight)), 256).
			MustStoreUInt(weight, 64)
		if tag == tagValidatorAddr {
			b.MustStoreSlice(hash(0xad), 256)
		}
		return b.EndCell()
	}
	list := map[uint64]*cell.Cell{1: descr(tagValidatorAddr, 20), 0: descr(tagValidator, 10)}

	t.Run("validators ext", func(t *testing.T) {
		c := cell.BeginCell().
			MustStoreUInt(tagValidatorsExt, 8).
			MustStoreUInt(100, 32).MustStoreUInt(200, 32).
			MustStoreUInt(2, 16).MustStoreUInt(2, 16).
			MustStoreUInt(30, 64).
			MustStoreBoolBit(true).MustStoreRef(directDict(t, 16, list)).
			EndCell()

		set, err := ParseValidatorSet(ParamCurrentValidators, c.BeginParse())
		require.NoError(t, err)
		require.Equal(t, uint64(30), *set.TotalWeight)
		require.Equal(t, []uint16{0, 1}, set.List.Keys())

		v := set.List.Values()
		require.Nil(t, []byte(v[0].AdnlAddress))
		require.Equal(t, hash(0xad), []byte(v[1].AdnlAddress))
	})

	t.Run("validators inline", func(t *testing.T) {
		b := cell.BeginCell().
			MustStoreUInt(tagValidators, 8).
			MustStoreUInt(100, 32).MustStoreUInt(200, 32).
			MustStoreUInt(2, 16).MustStoreUInt(1, 16)
		b.MustStoreBuilder(directDict(t, 16, list).ToBuilder())

		set, err := ParseValidatorSet(ParamPrevValidators, b.EndCell().BeginParse())
		require.NoError(t, err)
		require.Nil(t, set.TotalWeight)
		require.Equal(t, 2, set.List.Len())
	})

	t.Run("main above total", func(t *testing.T) {
		c := cell.BeginCell().
			MustStoreUInt(tagValidatorsExt, 8).
			MustStoreUInt(100, 32).MustStoreUInt(200, 32).
			MustStoreUInt(1, 16).MustStoreUInt(2, 16).
			MustStoreUInt(30, 64).MustStoreBoolBit(false).
			EndCell()

		_, err := ParseValidatorSet(ParamCurrentValidators, c.BeginParse())
		require.ErrorIs(t, err, codec.ErrRangeViolation)
	})
}

func TestParseJettonBridge(t *testing.T) {
	prices := cell.BeginCell()
	for i := int64(1); i <= 6; i++ {
		prices.MustStoreBigCoins(coins(i * 1000))
	}

	c := cell.BeginCell().
		MustStoreUInt(tagJettonBridgeV1, 8).
		MustStoreSlice(hash(0x01), 256).
		MustStoreSlice(hash(0x02), 256).
		MustStoreBoolBit(false).
		MustStoreUInt(3, 8).
		MustStoreRef(prices.EndCell()).
		MustStoreSlice(hash(0x03), 256).
		EndCell()

	got, err := ParseJettonBridge(ParamEthereumTokenBridge, c.BeginParse())
	require.NoError(t, err)
	require.Equal(t, uint8(1), got.Version)
	require.Equal(t, uint8(3), got.StateFlags)
	require.Empty(t, got.Oracles)
	require.Nil(t, got.BurnBridgeFee)
	require.Equal(t, int64(6000), got.Prices.DiscoverGasConsumption.Int64())
	require.Equal(t, hash(0x03), []byte(got.ExternalChainAddress))
	require.Equal(t, hash(0x01), got.BridgeAddress.Data())
	require.Equal(t, int32(-1), got.BridgeAddress.Workchain())
}

func TestParseFull(t *testing.T) {
	t.Run("all required present", func(t *testing.T) {
		params := requiredParams(t)
		params[1000] = empty()

		cfg, err := ParseFull(params)
		require.NoError(t, err)
		require.Equal(t, hash(0x55), cfg.ConfigAddress.Data())
		require.Nil(t, cfg.MinterAddress)
		require.Equal(t, GlobalVersion{}, cfg.GlobalVersion)
		require.Equal(t, []int32{0, 1, 12}, cfg.MandatoryParams)
		require.Equal(t, uint16(100), cfg.Validators.Counts.MaxMainValidators)
		require.Equal(t, uint32(196608), cfg.Validators.StakeLimits.MaxStakeFactor)
		require.NotNil(t, cfg.GasPrices.Basechain.SpecialGasLimit)
		require.Equal(t, uint64(100), cfg.GasPrices.Basechain.Flat.FlatGasLimit)
		require.Equal(t, uint32(10000), *cfg.Consensus.CatchainMaxBlocksCoeff)
		require.True(t, cfg.Catchain.ShuffleMcValidators)
		require.Len(t, cfg.StoragePrices, 1)
		require.Nil(t, cfg.ValidatorSets.Current)
		require.Equal(t, uint32(1735693200), cfg.SuspendedAddresses.SuspendedUntil)
	})

	t.Run("missing required param fails the aggregate", func(t *testing.T) {
		params := requiredParams(t)
		delete(params, ParamCatchainConfig)

		cfg, err := ParseFull(params)
		require.ErrorIs(t, err, codec.ErrMissingParameter)
		require.Nil(t, cfg)
	})

	t.Run("malformed optional param fails the aggregate", func(t *testing.T) {
		params := requiredParams(t)
		params[ParamMisbehaviourPunishment] = cell.BeginCell().MustStoreUInt(0x02, 8).EndCell()

		_, err := ParseFull(params)
		require.ErrorIs(t, err, codec.ErrTagMismatch)
	})
}

func TestLoadParams(t *testing.T) {
	d := cell.NewDict(32)
	require.NoError(t, d.Set(
		cell.BeginCell().MustStoreInt(int64(ParamStakeLimits), 32).EndCell(),
		cell.BeginCell().MustStoreRef(stakeLimitsVector(t)).EndCell(),
	))
	require.NoError(t, d.Set(
		cell.BeginCell().MustStoreInt(-999, 32).EndCell(),
		cell.BeginCell().MustStoreRef(empty()).EndCell(),
	))

	params, err := LoadParams(d.AsCell())
	require.NoError(t, err)
	require.Equal(t, []int32{-999, ParamStakeLimits}, params.IDs())

	// every call hands out an independent cursor
	first, err := ParseStakeLimits(params.Slice(ParamStakeLimits))
	require.NoError(t, err)
	second, err := ParseStakeLimits(params.Slice(ParamStakeLimits))
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Nil(t, params.Slice(ParamBurningConfig))
}

func TestParse_SchemeConstructors(t *testing.T) {
	t.Run("jetton bridge v0", func(t *testing.T) {
		c := cell.BeginCell().
			MustStoreUInt(tagJettonBridgeV0, 8).
			MustStoreSlice(hash(0x01), 256).
			MustStoreSlice(hash(0x02), 256).
			MustStoreBoolBit(false).
			MustStoreUInt(1, 8).
			MustStoreBigCoins(coins(500)).
			EndCell()

		got, err := ParseJettonBridge(ParamEthereumTokenBridge, c.BeginParse())
		require.NoError(t, err)
		require.Equal(t, uint8(0), got.Version)
		require.Equal(t, int64(500), got.BurnBridgeFee.Int64())
		require.Nil(t, got.Prices)
	})

	t.Run("global version", func(t *testing.T) {
		c := cell.BeginCell().MustStoreUInt(0xc4, 8).MustStoreUInt(9, 32).MustStoreUInt(0x2e, 64).EndCell()

		got, err := ParseGlobalVersion(c.BeginParse())
		require.NoError(t, err)
		require.Equal(t, GlobalVersion{Version: 9, Capabilities: 0x2e}, got)

		_, err = ParseGlobalVersion(cell.BeginCell().MustStoreUInt(0x01, 8).MustStoreUInt(9, 32).MustStoreUInt(0, 64).EndCell().BeginParse())
		require.ErrorIs(t, err, codec.ErrTagMismatch)
	})

	t.Run("misbehaviour punishment fine width", func(t *testing.T) {
		b := cell.BeginCell().
			MustStoreUInt(0x01, 8).
			MustStoreBigCoins(coins(101)).
			MustStoreUInt(0xfffffffe, 32)
		for i := uint64(1); i <= 9; i++ {
			b.MustStoreUInt(i, 16)
		}

		got, err := ParseMisbehaviourPunishment(b.EndCell().BeginParse())
		require.NoError(t, err)
		require.Equal(t, uint32(0xfffffffe), got.DefaultProportionalFine)
		require.Equal(t, uint16(1), got.SeverityFlatMult)
		require.Equal(t, uint16(9), got.MediumProportionalMult)
	})
}
