package tonconfig

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// ChainPair holds a parameter that exists separately for the
// masterchain and the basechain.
type ChainPair[T any] struct {
	Masterchain T `json:"masterchain"`
	Basechain   T `json:"basechain"`
}

type ValidatorsConfig struct {
	Timings     ElectionTimings `json:"timings"`
	Counts      ValidatorCounts `json:"counts"`
	StakeLimits StakeLimits     `json:"stake_limits"`
}

type ValidatorSets struct {
	Prev        *ValidatorSet `json:"prev,omitempty"`
	PrevTemp    *ValidatorSet `json:"prev_temp,omitempty"`
	Current     *ValidatorSet `json:"current,omitempty"`
	CurrentTemp *ValidatorSet `json:"current_temp,omitempty"`
	Next        *ValidatorSet `json:"next,omitempty"`
	NextTemp    *ValidatorSet `json:"next_temp,omitempty"`
}

type OracleBridges struct {
	Ethereum *OracleBridgeParams `json:"ethereum,omitempty"`
	Binance  *OracleBridgeParams `json:"binance,omitempty"`
	Polygon  *OracleBridgeParams `json:"polygon,omitempty"`
}

type JettonBridges struct {
	Ethereum *JettonBridgeParams `json:"ethereum,omitempty"`
	Binance  *JettonBridgeParams `json:"binance,omitempty"`
	Polygon  *JettonBridgeParams `json:"polygon,omitempty"`
}

type FullConfig struct {
	ConfigAddress          *address.Address                         `json:"config_address"`
	ElectorAddress         *address.Address                         `json:"elector_address"`
	MinterAddress          *address.Address                         `json:"minter_address,omitempty"`
	FeeCollectorAddress    *address.Address                         `json:"fee_collector_address,omitempty"`
	DNSRootAddress         *address.Address                         `json:"dns_root_address,omitempty"`
	Burning                BurningConfig                            `json:"burning"`
	MintPrices             *MintPrices                              `json:"mint_prices,omitempty"`
	ExtraCurrencies        []ExtraCurrency                          `json:"extra_currencies"`
	GlobalVersion          GlobalVersion                            `json:"global_version"`
	MandatoryParams        []int32                                  `json:"mandatory_params"`
	CriticalParams         []int32                                  `json:"critical_params"`
	Voting                 VotingSetup                              `json:"voting"`
	Workchains             dict.Dict[int32, WorkchainDescriptor]    `json:"workchains"`
	ComplaintPricing       ComplaintPricing                         `json:"complaint_pricing"`
	BlockCreateFees        BlockCreateFees                          `json:"block_create_fees"`
	Validators             ValidatorsConfig                         `json:"validators"`
	StoragePrices          []StoragePrices                          `json:"storage_prices"`
	GasPrices              ChainPair[GasLimitsPrices]               `json:"gas_prices"`
	BlockLimits            ChainPair[BlockLimits]                   `json:"block_limits"`
	MsgPrices              ChainPair[MsgForwardPrices]              `json:"msg_prices"`
	Catchain               CatchainConfig                           `json:"catchain"`
	Consensus              ConsensusConfig                          `json:"consensus"`
	FundamentalSmc         []*address.Address                       `json:"fundamental_smc"`
	ValidatorSets          ValidatorSets                            `json:"validator_sets"`
	MisbehaviourPunishment *MisbehaviourPunishment                  `json:"misbehaviour_punishment,omitempty"`
	SuspendedAddresses     SuspendedAddresses                       `json:"suspended_addresses"`
	PrecompiledContracts   []PrecompiledContract                    `json:"precompiled_contracts"`
	OracleBridges          OracleBridges                            `json:"oracle_bridges"`
	JettonBridges          JettonBridges                            `json:"jetton_bridges"`
}

// ParseFull decodes every parameter this package knows about. Any
// failure aborts the whole decode; unknown ids in params are ignored.
func ParseFull(params Params) (*FullConfig, error) {
	var cfg FullConfig

	steps := []func() error{
		func() (err error) {
			cfg.ConfigAddress, err = ParseMasterAddress(ParamConfigAddress, params.Slice(ParamConfigAddress))
			return
		},
		func() (err error) {
			cfg.ElectorAddress, err = ParseMasterAddress(ParamElectorAddress, params.Slice(ParamElectorAddress))
			return
		},
		func() (err error) {
			cfg.MinterAddress, err = ParseMasterAddress(ParamMinterAddress, params.Slice(ParamMinterAddress))
			return
		},
		func() (err error) {
			cfg.FeeCollectorAddress, err = ParseMasterAddress(ParamFeeCollectorAddress, params.Slice(ParamFeeCollectorAddress))
			return
		},
		func() (err error) {
			cfg.DNSRootAddress, err = ParseMasterAddress(ParamDNSRootAddress, params.Slice(ParamDNSRootAddress))
			return
		},
		func() (err error) {
			cfg.Burning, err = ParseBurningConfig(params.Slice(ParamBurningConfig))
			return
		},
		func() (err error) {
			cfg.MintPrices, err = ParseMintPrices(params.Slice(ParamMintPrices))
			return
		},
		func() (err error) {
			cfg.ExtraCurrencies, err = ParseExtraCurrencies(params.Slice(ParamExtraCurrencies))
			return
		},
		func() (err error) {
			cfg.GlobalVersion, err = ParseGlobalVersion(params.Slice(ParamGlobalVersion))
			return
		},
		func() (err error) {
			cfg.MandatoryParams, err = ParseMandatoryParams(params.Slice(ParamMandatoryParams))
			return
		},
		func() (err error) {
			cfg.CriticalParams, err = ParseCriticalParams(params.Slice(ParamCriticalParams))
			return
		},
		func() (err error) {
			cfg.Voting, err = ParseVotingSetup(params.Slice(ParamVotingSetup))
			return
		},
		func() (err error) {
			cfg.Workchains, err = ParseWorkchains(params.Slice(ParamWorkchains))
			return
		},
		func() (err error) {
			cfg.ComplaintPricing, err = ParseComplaintPricing(params.Slice(ParamComplaintPricing))
			return
		},
		func() (err error) {
			cfg.BlockCreateFees, err = ParseBlockCreateFees(params.Slice(ParamBlockCreateFees))
			return
		},
		func() (err error) {
			cfg.Validators.Timings, err = ParseElectionTimings(params.Slice(ParamElectionTimings))
			return
		},
		func() (err error) {
			cfg.Validators.Counts, err = ParseValidatorCounts(params.Slice(ParamValidatorCounts))
			return
		},
		func() (err error) {
			cfg.Validators.StakeLimits, err = ParseStakeLimits(params.Slice(ParamStakeLimits))
			return
		},
		func() (err error) {
			cfg.StoragePrices, err = ParseStoragePrices(params.Slice(ParamStoragePrices))
			return
		},
		func() (err error) {
			cfg.GasPrices.Masterchain, err = ParseGasLimitsPrices(ParamMasterchainGasPrices, params.Slice(ParamMasterchainGasPrices))
			return
		},
		func() (err error) {
			cfg.GasPrices.Basechain, err = ParseGasLimitsPrices(ParamBasechainGasPrices, params.Slice(ParamBasechainGasPrices))
			return
		},
		func() (err error) {
			cfg.BlockLimits.Masterchain, err = ParseBlockLimits(ParamMasterchainBlockLimits, params.Slice(ParamMasterchainBlockLimits))
			return
		},
		func() (err error) {
			cfg.BlockLimits.Basechain, err = ParseBlockLimits(ParamBasechainBlockLimits, params.Slice(ParamBasechainBlockLimits))
			return
		},
		func() (err error) {
			cfg.MsgPrices.Masterchain, err = ParseMsgForwardPrices(ParamMasterchainMsgPrices, params.Slice(ParamMasterchainMsgPrices))
			return
		},
		func() (err error) {
			cfg.MsgPrices.Basechain, err = ParseMsgForwardPrices(ParamBasechainMsgPrices, params.Slice(ParamBasechainMsgPrices))
			return
		},
		func() (err error) {
			cfg.Catchain, err = ParseCatchainConfig(params.Slice(ParamCatchainConfig))
			return
		},
		func() (err error) {
			cfg.Consensus, err = ParseConsensusConfig(params.Slice(ParamConsensusConfig))
			return
		},
		func() (err error) {
			cfg.FundamentalSmc, err = ParseFundamentalSmcAddresses(params.Slice(ParamFundamentalSmc))
			return
		},
		func() (err error) {
			cfg.ValidatorSets.Prev, err = ParseValidatorSet(ParamPrevValidators, params.Slice(ParamPrevValidators))
			return
		},
		func() (err error) {
			cfg.ValidatorSets.PrevTemp, err = ParseValidatorSet(ParamPrevTempValidators, params.Slice(ParamPrevTempValidators))
			return
		},
		func() (err error) {
			cfg.ValidatorSets.Current, err = ParseValidatorSet(ParamCurrentValidators, params.Slice(ParamCurrentValidators))
			return
		},
		func() (err error) {
			cfg.ValidatorSets.CurrentTemp, err = ParseValidatorSet(ParamCurrentTempValidators, params.Slice(ParamCurrentTempValidators))
			return
		},
		func() (err error) {
			cfg.ValidatorSets.Next, err = ParseValidatorSet(ParamNextValidators, params.Slice(ParamNextValidators))
			return
		},
		func() (err error) {
			cfg.ValidatorSets.NextTemp, err = ParseValidatorSet(ParamNextTempValidators, params.Slice(ParamNextTempValidators))
			return
		},
		func() (err error) {
			cfg.MisbehaviourPunishment, err = ParseMisbehaviourPunishment(params.Slice(ParamMisbehaviourPunishment))
			return
		},
		func() (err error) {
			cfg.SuspendedAddresses, err = ParseSuspendedAddresses(params.Slice(ParamSuspendedAddresses))
			return
		},
		func() (err error) {
			cfg.PrecompiledContracts, err = ParsePrecompiledContracts(params.Slice(ParamPrecompiledContracts))
			return
		},
		func() (err error) {
			cfg.OracleBridges.Ethereum, err = ParseOracleBridge(ParamEthereumBridge, params.Slice(ParamEthereumBridge))
			return
		},
		func() (err error) {
			cfg.OracleBridges.Binance, err = ParseOracleBridge(ParamBinanceBridge, params.Slice(ParamBinanceBridge))
			return
		},
		func() (err error) {
			cfg.OracleBridges.Polygon, err = ParseOracleBridge(ParamPolygonBridge, params.Slice(ParamPolygonBridge))
			return
		},
		func() (err error) {
			cfg.JettonBridges.Ethereum, err = ParseJettonBridge(ParamEthereumTokenBridge, params.Slice(ParamEthereumTokenBridge))
			return
		},
		func() (err error) {
			cfg.JettonBridges.Binance, err = ParseJettonBridge(ParamBinanceTokenBridge, params.Slice(ParamBinanceTokenBridge))
			return
		},
		func() (err error) {
			cfg.JettonBridges.Polygon, err = ParseJettonBridge(ParamPolygonTokenBridge, params.Slice(ParamPolygonTokenBridge))
			return
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, errors.Wrap(err, "failed to parse config")
		}
	}

	return &cfg, nil
}

type decoder func(id int32, s *cell.Slice) (interface{}, error)

func fixed[T any](f func(*cell.Slice) (T, error)) decoder {
	return func(_ int32, s *cell.Slice) (interface{}, error) { return f(s) }
}

func shared[T any](f func(int32, *cell.Slice) (T, error)) decoder {
	return func(id int32, s *cell.Slice) (interface{}, error) { return f(id, s) }
}

var decoders = map[int32]decoder{
	ParamConfigAddress:          shared(ParseMasterAddress),
	ParamElectorAddress:         shared(ParseMasterAddress),
	ParamMinterAddress:          shared(ParseMasterAddress),
	ParamFeeCollectorAddress:    shared(ParseMasterAddress),
	ParamDNSRootAddress:         shared(ParseMasterAddress),
	ParamBurningConfig:          fixed(ParseBurningConfig),
	ParamMintPrices:             fixed(ParseMintPrices),
	ParamExtraCurrencies:        fixed(ParseExtraCurrencies),
	ParamGlobalVersion:          fixed(ParseGlobalVersion),
	ParamMandatoryParams:        fixed(ParseMandatoryParams),
	ParamCriticalParams:         fixed(ParseCriticalParams),
	ParamVotingSetup:            fixed(ParseVotingSetup),
	ParamWorkchains:             fixed(ParseWorkchains),
	ParamComplaintPricing:       fixed(ParseComplaintPricing),
	ParamBlockCreateFees:        fixed(ParseBlockCreateFees),
	ParamElectionTimings:        fixed(ParseElectionTimings),
	ParamValidatorCounts:        fixed(ParseValidatorCounts),
	ParamStakeLimits:            fixed(ParseStakeLimits),
	ParamStoragePrices:          fixed(ParseStoragePrices),
	ParamMasterchainGasPrices:   shared(ParseGasLimitsPrices),
	ParamBasechainGasPrices:     shared(ParseGasLimitsPrices),
	ParamMasterchainBlockLimits: shared(ParseBlockLimits),
	ParamBasechainBlockLimits:   shared(ParseBlockLimits),
	ParamMasterchainMsgPrices:   shared(ParseMsgForwardPrices),
	ParamBasechainMsgPrices:     shared(ParseMsgForwardPrices),
	ParamCatchainConfig:         fixed(ParseCatchainConfig),
	ParamConsensusConfig:        fixed(ParseConsensusConfig),
	ParamFundamentalSmc:         fixed(ParseFundamentalSmcAddresses),
	ParamPrevValidators:         shared(ParseValidatorSet),
	ParamPrevTempValidators:     shared(ParseValidatorSet),
	ParamCurrentValidators:      shared(ParseValidatorSet),
	ParamCurrentTempValidators:  shared(ParseValidatorSet),
	ParamNextValidators:         shared(ParseValidatorSet),
	ParamNextTempValidators:     shared(ParseValidatorSet),
	ParamMisbehaviourPunishment: fixed(ParseMisbehaviourPunishment),
	ParamSuspendedAddresses:     fixed(ParseSuspendedAddresses),
	ParamPrecompiledContracts:   fixed(ParsePrecompiledContracts),
	ParamEthereumBridge:         shared(ParseOracleBridge),
	ParamBinanceBridge:          shared(ParseOracleBridge),
	ParamPolygonBridge:          shared(ParseOracleBridge),
	ParamEthereumTokenBridge:    shared(ParseJettonBridge),
	ParamBinanceTokenBridge:     shared(ParseJettonBridge),
	ParamPolygonTokenBridge:     shared(ParseJettonBridge),
}

var ErrUnknownParam = errors.New("unknown config param")

// ParseParam decodes a single parameter by id. s may be nil, in which
// case the parameter's policy applies.
func ParseParam(id int32, s *cell.Slice) (interface{}, error) {
	decode, ok := decoders[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownParam, "param %d", id)
	}

	return decode(id, s)
}
