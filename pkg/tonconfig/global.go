package tonconfig

import (
	"math/big"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

type BurningConfig struct {
	BlackholeAddress *address.Address `json:"blackhole_address,omitempty"`
	FeeBurnNum       uint32           `json:"fee_burn_num"`
	FeeBurnDenom     uint32           `json:"fee_burn_denom"`
}

// ParseBurningConfig decodes param 5:
// burning_config#01 blackhole_addr:(Maybe bits256) fee_burn_num:# fee_burn_denom:#.
func ParseBurningConfig(s *cell.Slice) (BurningConfig, error) {
	if s == nil {
		return absent[BurningConfig](ParamBurningConfig)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "burning config", 0x01)

	var res BurningConfig
	if r.Bit() {
		res.BlackholeAddress = masterAddress(r.Bytes(32))
	}
	res.FeeBurnNum = uint32(r.Uint(32))
	res.FeeBurnDenom = uint32(r.Uint(32))

	if r.Err() == nil && (res.FeeBurnDenom < 1 || res.FeeBurnNum > res.FeeBurnDenom) {
		r.Failf(codec.ErrRangeViolation, "fee burn ratio %d/%d", res.FeeBurnNum, res.FeeBurnDenom)
	}
	if err := r.Err(); err != nil {
		return BurningConfig{}, paramErr(ParamBurningConfig, err)
	}

	return res, nil
}

type MintPrices struct {
	MintNewPrice *big.Int `json:"mint_new_price"`
	MintAddPrice *big.Int `json:"mint_add_price"`
}

// ParseMintPrices decodes param 6.
func ParseMintPrices(s *cell.Slice) (*MintPrices, error) {
	if s == nil {
		return absent[*MintPrices](ParamMintPrices)
	}

	r := codec.NewReader(s)
	res := &MintPrices{
		MintNewPrice: r.Coins(),
		MintAddPrice: r.Coins(),
	}
	if err := r.Err(); err != nil {
		return nil, paramErr(ParamMintPrices, err)
	}

	return res, nil
}

type ExtraCurrency struct {
	ID     uint32   `json:"id"`
	Amount *big.Int `json:"amount"`
}

// ParseExtraCurrencies decodes param 7, an ExtraCurrencyCollection:
// HashmapE 32 (VarUInteger 32).
func ParseExtraCurrencies(s *cell.Slice) ([]ExtraCurrency, error) {
	if s == nil {
		return absent[[]ExtraCurrency](ParamExtraCurrencies)
	}

	d, err := dict.Load(codec.NewReader(s), dict.Uint[uint32](32), func(r *codec.Reader) (*big.Int, error) {
		v := r.VarUint(5)
		return v, r.Err()
	})
	if err != nil {
		return nil, paramErr(ParamExtraCurrencies, err)
	}

	res := make([]ExtraCurrency, 0, d.Len())
	for _, e := range d.Entries() {
		res = append(res, ExtraCurrency{ID: e.Key, Amount: e.Value})
	}

	return res, nil
}

type GlobalVersion struct {
	Version      uint32 `json:"version"`
	Capabilities uint64 `json:"capabilities"`
}

// ParseGlobalVersion decodes param 8:
// capabilities#c4 version:uint32 capabilities:uint64.
func ParseGlobalVersion(s *cell.Slice) (GlobalVersion, error) {
	if s == nil {
		return absent[GlobalVersion](ParamGlobalVersion)
	}

	r := codec.NewReader(s)
	// capabilities#c4 is the only constructor, so the tag is checked.
	r.ExpectTag(8, "global version", 0xc4)
	res := GlobalVersion{
		Version:      uint32(r.Uint(32)),
		Capabilities: r.Uint(64),
	}
	if err := r.Err(); err != nil {
		return GlobalVersion{}, paramErr(ParamGlobalVersion, err)
	}

	return res, nil
}

// ParseMandatoryParams decodes param 9, a Hashmap 32 True of parameter
// ids that must always be present.
func ParseMandatoryParams(s *cell.Slice) ([]int32, error) {
	if s == nil {
		return absent[[]int32](ParamMandatoryParams)
	}

	d, err := dict.LoadDirect(codec.NewReader(s), dict.Uint[uint32](32), dict.None)
	if err != nil {
		return nil, paramErr(ParamMandatoryParams, err)
	}

	ids := make([]int32, 0, d.Len())
	for _, k := range d.Keys() {
		ids = append(ids, int32(k))
	}

	return ids, nil
}

// ParseCriticalParams decodes param 10, a Hashmap 32 True of parameter
// ids whose change needs a critical vote.
func ParseCriticalParams(s *cell.Slice) ([]int32, error) {
	if s == nil {
		return absent[[]int32](ParamCriticalParams)
	}

	d, err := dict.LoadDirect(codec.NewReader(s), dict.Int[int32](32), dict.None)
	if err != nil {
		return nil, paramErr(ParamCriticalParams, err)
	}

	return d.Keys(), nil
}

type ProposalSetup struct {
	MinTotalRounds uint8  `json:"min_tot_rounds"`
	MaxTotalRounds uint8  `json:"max_tot_rounds"`
	MinWins        uint8  `json:"min_wins"`
	MaxLosses      uint8  `json:"max_losses"`
	MinStoreSec    uint32 `json:"min_store_sec"`
	MaxStoreSec    uint32 `json:"max_store_sec"`
	BitPrice       uint32 `json:"bit_price"`
	CellPrice      uint32 `json:"cell_price"`
}

type VotingSetup struct {
	NormalParams   ProposalSetup `json:"normal_params"`
	CriticalParams ProposalSetup `json:"critical_params"`
}

// ParseVotingSetup decodes param 11:
// cfg_vote_setup#91 normal_params:^ConfigProposalSetup critical_params:^ConfigProposalSetup.
func ParseVotingSetup(s *cell.Slice) (VotingSetup, error) {
	if s == nil {
		return absent[VotingSetup](ParamVotingSetup)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "voting setup", 0x91)
	if err := r.Err(); err != nil {
		return VotingSetup{}, paramErr(ParamVotingSetup, err)
	}

	normal, err := loadProposalSetup(r.Ref())
	if err != nil {
		return VotingSetup{}, paramErr(ParamVotingSetup, errors.Wrap(err, "normal params"))
	}

	critical, err := loadProposalSetup(r.Ref())
	if err != nil {
		return VotingSetup{}, paramErr(ParamVotingSetup, errors.Wrap(err, "critical params"))
	}

	return VotingSetup{NormalParams: normal, CriticalParams: critical}, nil
}

func loadProposalSetup(r *codec.Reader) (ProposalSetup, error) {
	r.ExpectTag(8, "proposal setup", 0x36)
	res := ProposalSetup{
		MinTotalRounds: uint8(r.Uint(8)),
		MaxTotalRounds: uint8(r.Uint(8)),
		MinWins:        uint8(r.Uint(8)),
		MaxLosses:      uint8(r.Uint(8)),
		MinStoreSec:    uint32(r.Uint(32)),
		MaxStoreSec:    uint32(r.Uint(32)),
		BitPrice:       uint32(r.Uint(32)),
		CellPrice:      uint32(r.Uint(32)),
	}

	return res, r.Err()
}
