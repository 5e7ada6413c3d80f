package tonconfig

import (
	"math/big"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	tagJettonBridgeV0 = 0x00
	tagJettonBridgeV1 = 0x01
)

type Oracle struct {
	Address   *address.Address `json:"address"`
	PublicKey hexutil.Bytes    `json:"public_key"`
}

type OracleBridgeParams struct {
	BridgeAddress         *address.Address `json:"bridge_address"`
	OracleMultisigAddress *address.Address `json:"oracle_multisig_address"`
	Oracles               []Oracle         `json:"oracles"`
	ExternalChainAddress  hexutil.Bytes    `json:"external_chain_address"`
}

// ParseOracleBridge decodes params 71, 72 and 73.
func ParseOracleBridge(id int32, s *cell.Slice) (*OracleBridgeParams, error) {
	if s == nil {
		return absent[*OracleBridgeParams](id)
	}

	r := codec.NewReader(s)
	res := &OracleBridgeParams{
		BridgeAddress:         masterAddress(r.Bytes(32)),
		OracleMultisigAddress: masterAddress(r.Bytes(32)),
	}
	if err := r.Err(); err != nil {
		return nil, paramErr(id, err)
	}

	oracles, err := loadOracles(r)
	if err != nil {
		return nil, paramErr(id, err)
	}
	res.Oracles = oracles

	res.ExternalChainAddress = r.Bytes(32)
	if err = r.Err(); err != nil {
		return nil, paramErr(id, err)
	}

	return res, nil
}

func loadOracles(r *codec.Reader) ([]Oracle, error) {
	d, err := dict.Load(r, dict.Bytes(256), func(r *codec.Reader) ([]byte, error) {
		v := r.Bytes(32)
		return v, r.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load oracles")
	}

	oracles := make([]Oracle, 0, d.Len())
	for _, e := range d.Entries() {
		oracles = append(oracles, Oracle{Address: masterAddress(e.Key), PublicKey: e.Value})
	}

	return oracles, nil
}

type JettonBridgePrices struct {
	BridgeBurnFee           *big.Int `json:"bridge_burn_fee"`
	BridgeMintFee           *big.Int `json:"bridge_mint_fee"`
	WalletMinTonsForStorage *big.Int `json:"wallet_min_tons_for_storage"`
	WalletGasConsumption    *big.Int `json:"wallet_gas_consumption"`
	MinterMinTonsForStorage *big.Int `json:"minter_min_tons_for_storage"`
	DiscoverGasConsumption  *big.Int `json:"discover_gas_consumption"`
}

// JettonBridgeParams covers both constructors. BurnBridgeFee is only set
// by jetton_bridge_params_v0, Prices and ExternalChainAddress only by v1.
type JettonBridgeParams struct {
	Version              uint8               `json:"version"`
	BridgeAddress        *address.Address    `json:"bridge_address"`
	OraclesAddress       *address.Address    `json:"oracles_address"`
	Oracles              []Oracle            `json:"oracles"`
	StateFlags           uint8               `json:"state_flags"`
	BurnBridgeFee        *big.Int            `json:"burn_bridge_fee,omitempty"`
	Prices               *JettonBridgePrices `json:"prices,omitempty"`
	ExternalChainAddress hexutil.Bytes       `json:"external_chain_address,omitempty"`
}

// ParseJettonBridge decodes params 79, 81 and 82.
func ParseJettonBridge(id int32, s *cell.Slice) (*JettonBridgeParams, error) {
	if s == nil {
		return absent[*JettonBridgeParams](id)
	}

	r := codec.NewReader(s)
	// Both constructors are live on chain: v0 stores the burn fee inline, v1 a prices ref.
	tag := r.ExpectTag(8, "jetton bridge params", tagJettonBridgeV0, tagJettonBridgeV1)
	res := &JettonBridgeParams{
		Version:        uint8(tag),
		BridgeAddress:  masterAddress(r.Bytes(32)),
		OraclesAddress: masterAddress(r.Bytes(32)),
	}
	if err := r.Err(); err != nil {
		return nil, paramErr(id, err)
	}

	oracles, err := loadOracles(r)
	if err != nil {
		return nil, paramErr(id, err)
	}
	res.Oracles = oracles
	res.StateFlags = uint8(r.Uint(8))

	switch tag {
	case tagJettonBridgeV0:
		res.BurnBridgeFee = r.Coins()
	case tagJettonBridgeV1:
		pr := r.Ref()
		res.Prices = &JettonBridgePrices{
			BridgeBurnFee:           pr.Coins(),
			BridgeMintFee:           pr.Coins(),
			WalletMinTonsForStorage: pr.Coins(),
			WalletGasConsumption:    pr.Coins(),
			MinterMinTonsForStorage: pr.Coins(),
			DiscoverGasConsumption:  pr.Coins(),
		}
		if err = pr.Err(); err != nil {
			return nil, paramErr(id, errors.Wrap(err, "prices"))
		}
		res.ExternalChainAddress = r.Bytes(32)
	}

	if err = r.Err(); err != nil {
		return nil, paramErr(id, err)
	}

	return res, nil
}
