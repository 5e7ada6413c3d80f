package tonconfig

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	tagCatchain   = 0xc1
	tagCatchainV2 = 0xc2

	tagConsensus   = 0xd6
	tagConsensusV2 = 0xd7
	tagConsensusV3 = 0xd8
	tagConsensusV4 = 0xd9
)

type CatchainConfig struct {
	Flags                   uint8  `json:"flags"`
	ShuffleMcValidators     bool   `json:"shuffle_mc_validators"`
	McCatchainLifetime      uint32 `json:"mc_catchain_lifetime"`
	ShardCatchainLifetime   uint32 `json:"shard_catchain_lifetime"`
	ShardValidatorsLifetime uint32 `json:"shard_validators_lifetime"`
	ShardValidatorsNum      uint32 `json:"shard_validators_num"`
}

// ParseCatchainConfig decodes param 28. catchain_config_new#c2 prefixes
// the lifetimes with flags and the shuffle bit.
func ParseCatchainConfig(s *cell.Slice) (CatchainConfig, error) {
	if s == nil {
		return absent[CatchainConfig](ParamCatchainConfig)
	}

	r := codec.NewReader(s)

	var res CatchainConfig
	if r.ExpectTag(8, "catchain config", tagCatchain, tagCatchainV2) == tagCatchainV2 {
		res.Flags = uint8(r.Uint(7))
		res.ShuffleMcValidators = r.Bit()
	}
	res.McCatchainLifetime = uint32(r.Uint(32))
	res.ShardCatchainLifetime = uint32(r.Uint(32))
	res.ShardValidatorsLifetime = uint32(r.Uint(32))
	res.ShardValidatorsNum = uint32(r.Uint(32))

	if err := r.Err(); err != nil {
		return CatchainConfig{}, paramErr(ParamCatchainConfig, err)
	}

	return res, nil
}

type ConsensusConfig struct {
	Flags                  uint8   `json:"flags"`
	NewCatchainIDs         bool    `json:"new_catchain_ids"`
	RoundCandidates        uint32  `json:"round_candidates"`
	NextCandidateDelayMs   uint32  `json:"next_candidate_delay_ms"`
	ConsensusTimeoutMs     uint32  `json:"consensus_timeout_ms"`
	FastAttempts           uint32  `json:"fast_attempts"`
	AttemptDuration        uint32  `json:"attempt_duration"`
	CatchainMaxDeps        uint32  `json:"catchain_max_deps"`
	MaxBlockBytes          uint32  `json:"max_block_bytes"`
	MaxCollatedBytes       uint32  `json:"max_collated_bytes"`
	ProtoVersion           *uint16 `json:"proto_version,omitempty"`
	CatchainMaxBlocksCoeff *uint32 `json:"catchain_max_blocks_coeff,omitempty"`
}

// ParseConsensusConfig decodes param 29. Every later constructor
// extends the previous one; #d6 stores round_candidates as uint32,
// the rest as uint8.
func ParseConsensusConfig(s *cell.Slice) (ConsensusConfig, error) {
	if s == nil {
		return absent[ConsensusConfig](ParamConsensusConfig)
	}

	r := codec.NewReader(s)
	tag := r.ExpectTag(8, "consensus config", tagConsensus, tagConsensusV2, tagConsensusV3, tagConsensusV4)

	var res ConsensusConfig
	if tag == tagConsensus {
		res.RoundCandidates = uint32(r.Uint(32))
	} else {
		res.Flags = uint8(r.Uint(7))
		res.NewCatchainIDs = r.Bit()
		res.RoundCandidates = uint32(r.Uint(8))
	}
	res.NextCandidateDelayMs = uint32(r.Uint(32))
	res.ConsensusTimeoutMs = uint32(r.Uint(32))
	res.FastAttempts = uint32(r.Uint(32))
	res.AttemptDuration = uint32(r.Uint(32))
	res.CatchainMaxDeps = uint32(r.Uint(32))
	res.MaxBlockBytes = uint32(r.Uint(32))
	res.MaxCollatedBytes = uint32(r.Uint(32))

	if tag == tagConsensusV3 || tag == tagConsensusV4 {
		proto := uint16(r.Uint(16))
		res.ProtoVersion = &proto
	}
	if tag == tagConsensusV4 {
		coeff := uint32(r.Uint(32))
		res.CatchainMaxBlocksCoeff = &coeff
	}

	if r.Err() == nil && res.RoundCandidates < 1 {
		r.Failf(codec.ErrRangeViolation, "round_candidates is zero")
	}
	if err := r.Err(); err != nil {
		return ConsensusConfig{}, paramErr(ParamConsensusConfig, err)
	}

	return res, nil
}
