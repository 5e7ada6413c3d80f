package tonconfig

import (
	"math/big"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

type ElectionTimings struct {
	ValidatorsElectedFor uint32 `json:"validators_elected_for"`
	ElectionsStartBefore uint32 `json:"elections_start_before"`
	ElectionsEndBefore   uint32 `json:"elections_end_before"`
	StakeHeldFor         uint32 `json:"stake_held_for"`
}

// ParseElectionTimings decodes param 15.
func ParseElectionTimings(s *cell.Slice) (ElectionTimings, error) {
	if s == nil {
		return absent[ElectionTimings](ParamElectionTimings)
	}

	r := codec.NewReader(s)
	res := ElectionTimings{
		ValidatorsElectedFor: uint32(r.Uint(32)),
		ElectionsStartBefore: uint32(r.Uint(32)),
		ElectionsEndBefore:   uint32(r.Uint(32)),
		StakeHeldFor:         uint32(r.Uint(32)),
	}
	if err := r.Err(); err != nil {
		return ElectionTimings{}, paramErr(ParamElectionTimings, err)
	}

	return res, nil
}

type ValidatorCounts struct {
	MaxValidators     uint16 `json:"max_validators"`
	MaxMainValidators uint16 `json:"max_main_validators"`
	MinValidators     uint16 `json:"min_validators"`
}

// ParseValidatorCounts decodes param 16. The counts must satisfy
// max_validators >= max_main_validators >= min_validators >= 1.
func ParseValidatorCounts(s *cell.Slice) (ValidatorCounts, error) {
	if s == nil {
		return absent[ValidatorCounts](ParamValidatorCounts)
	}

	r := codec.NewReader(s)
	res := ValidatorCounts{
		MaxValidators:     uint16(r.Uint(16)),
		MaxMainValidators: uint16(r.Uint(16)),
		MinValidators:     uint16(r.Uint(16)),
	}
	if r.Err() == nil {
		switch {
		case res.MaxValidators < res.MaxMainValidators:
			r.Failf(codec.ErrRangeViolation, "max_validators %d below max_main_validators %d",
				res.MaxValidators, res.MaxMainValidators)
		case res.MaxMainValidators < res.MinValidators:
			r.Failf(codec.ErrRangeViolation, "max_main_validators %d below min_validators %d",
				res.MaxMainValidators, res.MinValidators)
		case res.MinValidators < 1:
			r.Failf(codec.ErrRangeViolation, "min_validators is zero")
		}
	}
	if err := r.Err(); err != nil {
		return ValidatorCounts{}, paramErr(ParamValidatorCounts, err)
	}

	return res, nil
}

type StakeLimits struct {
	MinStake       *big.Int `json:"min_stake"`
	MaxStake       *big.Int `json:"max_stake"`
	MinTotalStake  *big.Int `json:"min_total_stake"`
	MaxStakeFactor uint32   `json:"max_stake_factor"`
}

// ParseStakeLimits decodes param 17.
func ParseStakeLimits(s *cell.Slice) (StakeLimits, error) {
	if s == nil {
		return absent[StakeLimits](ParamStakeLimits)
	}

	r := codec.NewReader(s)
	res := StakeLimits{
		MinStake:       r.Coins(),
		MaxStake:       r.Coins(),
		MinTotalStake:  r.Coins(),
		MaxStakeFactor: uint32(r.Uint(32)),
	}
	if err := r.Err(); err != nil {
		return StakeLimits{}, paramErr(ParamStakeLimits, err)
	}

	return res, nil
}

const (
	tagValidators    = 0x11
	tagValidatorsExt = 0x12
	tagValidator     = 0x53
	tagValidatorAddr = 0x73
	tagEd25519PubKey = 0x8e81278a
)

type ValidatorDescr struct {
	PublicKey   hexutil.Bytes `json:"public_key"`
	Weight      uint64        `json:"weight"`
	AdnlAddress hexutil.Bytes `json:"adnl_address,omitempty"`
}

type ValidatorSet struct {
	UtimeSince  uint32                            `json:"utime_since"`
	UtimeUntil  uint32                            `json:"utime_until"`
	Total       uint16                            `json:"total"`
	Main        uint16                            `json:"main"`
	TotalWeight *uint64                           `json:"total_weight,omitempty"`
	List        dict.Dict[uint16, ValidatorDescr] `json:"list"`
}

// ParseValidatorSet decodes params 32 through 37. validators#11 keeps
// the list inline, validators_ext#12 adds the total weight and keeps
// the list behind a presence bit.
func ParseValidatorSet(id int32, s *cell.Slice) (*ValidatorSet, error) {
	if s == nil {
		return absent[*ValidatorSet](id)
	}

	res, err := loadValidatorSet(codec.NewReader(s))
	if err != nil {
		return nil, paramErr(id, err)
	}

	return res, nil
}

func loadValidatorSet(r *codec.Reader) (*ValidatorSet, error) {
	tag := r.ExpectTag(8, "validator set", tagValidators, tagValidatorsExt)

	res := &ValidatorSet{
		UtimeSince: uint32(r.Uint(32)),
		UtimeUntil: uint32(r.Uint(32)),
		Total:      uint16(r.Uint(16)),
		Main:       uint16(r.Uint(16)),
	}
	if r.Err() == nil && (res.Main < 1 || res.Main > res.Total) {
		r.Failf(codec.ErrRangeViolation, "main validators %d out of [1, %d]", res.Main, res.Total)
	}

	var err error
	switch tag {
	case tagValidators:
		if err = r.Err(); err != nil {
			return nil, err
		}
		res.List, err = dict.LoadDirect(r, dict.Uint[uint16](16), loadValidatorDescr)
	case tagValidatorsExt:
		weight := r.Uint(64)
		res.TotalWeight = &weight
		if err = r.Err(); err != nil {
			return nil, err
		}
		res.List, err = dict.Load(r, dict.Uint[uint16](16), loadValidatorDescr)
	default:
		return nil, r.Err()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load validators list")
	}

	return res, nil
}

func loadValidatorDescr(r *codec.Reader) (ValidatorDescr, error) {
	tag := r.ExpectTag(8, "validator descriptor", tagValidator, tagValidatorAddr)
	r.ExpectTag(32, "validator public key", tagEd25519PubKey)

	res := ValidatorDescr{
		PublicKey: r.Bytes(32),
		Weight:    r.Uint(64),
	}
	if tag == tagValidatorAddr {
		res.AdnlAddress = r.Bytes(32)
	}

	if err := r.Err(); err != nil {
		return ValidatorDescr{}, err
	}

	return res, nil
}

type MisbehaviourPunishment struct {
	DefaultFlatFine          *big.Int `json:"default_flat_fine"`
	DefaultProportionalFine  uint32   `json:"default_proportional_fine"`
	SeverityFlatMult         uint16   `json:"severity_flat_mult"`
	SeverityProportionalMult uint16   `json:"severity_proportional_mult"`
	UnpunishableInterval     uint16   `json:"unpunishable_interval"`
	LongInterval             uint16   `json:"long_interval"`
	LongFlatMult             uint16   `json:"long_flat_mult"`
	LongProportionalMult     uint16   `json:"long_proportional_mult"`
	MediumInterval           uint16   `json:"medium_interval"`
	MediumFlatMult           uint16   `json:"medium_flat_mult"`
	MediumProportionalMult   uint16   `json:"medium_proportional_mult"`
}

// ParseMisbehaviourPunishment decodes param 40,
// misbehaviour_punishment_config_v1#01.
func ParseMisbehaviourPunishment(s *cell.Slice) (*MisbehaviourPunishment, error) {
	if s == nil {
		return absent[*MisbehaviourPunishment](ParamMisbehaviourPunishment)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "misbehaviour punishment", 0x01)
	// default_proportional_fine is a uint32 in the block scheme, not coins.
	res := &MisbehaviourPunishment{
		DefaultFlatFine:          r.Coins(),
		DefaultProportionalFine:  uint32(r.Uint(32)),
		SeverityFlatMult:         uint16(r.Uint(16)),
		SeverityProportionalMult: uint16(r.Uint(16)),
		UnpunishableInterval:     uint16(r.Uint(16)),
		LongInterval:             uint16(r.Uint(16)),
		LongFlatMult:             uint16(r.Uint(16)),
		LongProportionalMult:     uint16(r.Uint(16)),
		MediumInterval:           uint16(r.Uint(16)),
		MediumFlatMult:           uint16(r.Uint(16)),
		MediumProportionalMult:   uint16(r.Uint(16)),
	}
	if err := r.Err(); err != nil {
		return nil, paramErr(ParamMisbehaviourPunishment, err)
	}

	return res, nil
}
