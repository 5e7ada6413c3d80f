package tonconfig

import (
	"slices"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
)

const (
	ParamConfigAddress          int32 = 0
	ParamElectorAddress         int32 = 1
	ParamMinterAddress          int32 = 2
	ParamFeeCollectorAddress    int32 = 3
	ParamDNSRootAddress         int32 = 4
	ParamBurningConfig          int32 = 5
	ParamMintPrices             int32 = 6
	ParamExtraCurrencies        int32 = 7
	ParamGlobalVersion          int32 = 8
	ParamMandatoryParams        int32 = 9
	ParamCriticalParams         int32 = 10
	ParamVotingSetup            int32 = 11
	ParamWorkchains             int32 = 12
	ParamComplaintPricing       int32 = 13
	ParamBlockCreateFees        int32 = 14
	ParamElectionTimings        int32 = 15
	ParamValidatorCounts        int32 = 16
	ParamStakeLimits            int32 = 17
	ParamStoragePrices          int32 = 18
	ParamMasterchainGasPrices   int32 = 20
	ParamBasechainGasPrices     int32 = 21
	ParamMasterchainBlockLimits int32 = 22
	ParamBasechainBlockLimits   int32 = 23
	ParamMasterchainMsgPrices   int32 = 24
	ParamBasechainMsgPrices     int32 = 25
	ParamCatchainConfig         int32 = 28
	ParamConsensusConfig        int32 = 29
	ParamFundamentalSmc         int32 = 31
	ParamPrevValidators         int32 = 32
	ParamPrevTempValidators     int32 = 33
	ParamCurrentValidators      int32 = 34
	ParamCurrentTempValidators  int32 = 35
	ParamNextValidators         int32 = 36
	ParamNextTempValidators     int32 = 37
	ParamMisbehaviourPunishment int32 = 40
	ParamSuspendedAddresses     int32 = 44
	ParamPrecompiledContracts   int32 = 45
	ParamEthereumBridge         int32 = 71
	ParamBinanceBridge          int32 = 72
	ParamPolygonBridge          int32 = 73
	ParamEthereumTokenBridge    int32 = 79
	ParamBinanceTokenBridge     int32 = 81
	ParamPolygonTokenBridge     int32 = 82
)

type Presence uint8

const (
	Required Presence = iota
	Optional
)

func (p Presence) String() string {
	if p == Optional {
		return "optional"
	}
	return "required"
}

// Policy tells what an absent parameter decodes to. Default is only
// meaningful for optional parameters; nil means the decoder returns
// its zero value.
type Policy struct {
	Presence Presence
	Default  interface{}
}

var (
	required = Policy{Presence: Required}
	optional = Policy{Presence: Optional}
)

var policies = map[int32]Policy{
	ParamConfigAddress:          required,
	ParamElectorAddress:         required,
	ParamMinterAddress:          optional,
	ParamFeeCollectorAddress:    optional,
	ParamDNSRootAddress:         optional,
	ParamBurningConfig:          required,
	ParamMintPrices:             optional,
	ParamExtraCurrencies:        required,
	ParamGlobalVersion:          {Presence: Optional, Default: GlobalVersion{}},
	ParamMandatoryParams:        required,
	ParamCriticalParams:         required,
	ParamVotingSetup:            required,
	ParamWorkchains:             required,
	ParamComplaintPricing:       required,
	ParamBlockCreateFees:        required,
	ParamElectionTimings:        required,
	ParamValidatorCounts:        required,
	ParamStakeLimits:            required,
	ParamStoragePrices:          required,
	ParamMasterchainGasPrices:   required,
	ParamBasechainGasPrices:     required,
	ParamMasterchainBlockLimits: required,
	ParamBasechainBlockLimits:   required,
	ParamMasterchainMsgPrices:   required,
	ParamBasechainMsgPrices:     required,
	ParamCatchainConfig:         required,
	ParamConsensusConfig:        required,
	ParamFundamentalSmc:         required,
	ParamPrevValidators:         optional,
	ParamPrevTempValidators:     optional,
	ParamCurrentValidators:      optional,
	ParamCurrentTempValidators:  optional,
	ParamNextValidators:         optional,
	ParamNextTempValidators:     optional,
	ParamMisbehaviourPunishment: optional,
	ParamSuspendedAddresses:     required,
	ParamPrecompiledContracts:   required,
	ParamEthereumBridge:         optional,
	ParamBinanceBridge:          optional,
	ParamPolygonBridge:          optional,
	ParamEthereumTokenBridge:    optional,
	ParamBinanceTokenBridge:     optional,
	ParamPolygonTokenBridge:     optional,
}

// PolicyFor returns the presence policy of a known parameter.
func PolicyFor(id int32) (Policy, bool) {
	p, ok := policies[id]
	return p, ok
}

// KnownParams lists every parameter id this package decodes, ascending.
func KnownParams() []int32 {
	ids := make([]int32, 0, len(policies))
	for id := range policies {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// absent resolves a missing parameter according to its policy.
func absent[T any](id int32) (T, error) {
	var zero T

	p, ok := policies[id]
	if !ok || p.Presence == Required {
		return zero, errors.Wrapf(codec.ErrMissingParameter, "param %d", id)
	}
	if p.Default == nil {
		return zero, nil
	}

	v, ok := p.Default.(T)
	if !ok {
		return zero, errors.Errorf("param %d: default of type %T", id, p.Default)
	}

	return v, nil
}

func paramErr(id int32, err error) error {
	return errors.Wrapf(err, "param %d", id)
}
