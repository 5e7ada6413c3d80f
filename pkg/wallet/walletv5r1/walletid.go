package walletv5r1

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
)

const (
	MainnetGlobalID int32 = -239
	TestnetGlobalID int32 = -3

	MaxSubwalletNumber = 1<<15 - 1
	MaxCustomContext   = 1<<31 - 1
)

type Version string

const VersionV5R1 Version = "v5r1"

var (
	versionCodes = map[Version]uint8{VersionV5R1: 0}
	versionNames = map[uint8]Version{0: VersionV5R1}
)

// WalletID is wallet_id = global_id ^ context_id, where
//
//	context_id_client$1 = wc:int8 wallet_version:uint8 counter:uint15
//	context_id_backoffice$0 = counter:uint31
type WalletID struct {
	NetworkGlobalID int32   `json:"network_global_id"`
	Context         Context `json:"context"`
}

type Context interface {
	contextWord() (uint32, error)
}

type ClientContext struct {
	Workchain       int8    `json:"workchain"`
	Version         Version `json:"wallet_version"`
	SubwalletNumber uint16  `json:"subwallet_number"`
}

// CustomContext is a bare 31-bit counter.
type CustomContext uint32

func (c ClientContext) contextWord() (uint32, error) {
	code, ok := versionCodes[c.Version]
	if !ok {
		return 0, errors.Wrapf(codec.ErrUnknownWalletVersion, "%q", string(c.Version))
	}
	if c.SubwalletNumber > MaxSubwalletNumber {
		return 0, errors.Wrapf(codec.ErrRangeViolation, "subwallet number %d exceeds %d", c.SubwalletNumber, MaxSubwalletNumber)
	}

	return 1<<31 | uint32(uint8(c.Workchain))<<23 | uint32(code)<<15 | uint32(c.SubwalletNumber), nil
}

func (c CustomContext) contextWord() (uint32, error) {
	if c > MaxCustomContext {
		return 0, errors.Wrapf(codec.ErrRangeViolation, "custom context %d exceeds %d", uint32(c), MaxCustomContext)
	}

	return uint32(c), nil
}

// DefaultWalletID is the client context used by wallets deployed without
// an explicit subwallet.
func DefaultWalletID(networkGlobalID int32, workchain int8) WalletID {
	return WalletID{
		NetworkGlobalID: networkGlobalID,
		Context:         ClientContext{Workchain: workchain, Version: VersionV5R1},
	}
}

// Encode packs the id into the int32 stored by the contract.
func (id WalletID) Encode() (int32, error) {
	if id.Context == nil {
		return 0, errors.New("wallet id context is not set")
	}

	word, err := id.Context.contextWord()
	if err != nil {
		return 0, errors.Wrap(err, "failed to encode wallet id")
	}

	return id.NetworkGlobalID ^ int32(word), nil
}

// DecodeWalletID recovers the context of an encoded id.
func DecodeWalletID(value int32, networkGlobalID int32) (WalletID, error) {
	word := uint32(value ^ networkGlobalID)
	res := WalletID{NetworkGlobalID: networkGlobalID}

	if word>>31 == 0 {
		res.Context = CustomContext(word & MaxCustomContext)
		return res, nil
	}

	code := uint8(word >> 15)
	version, ok := versionNames[code]
	if !ok {
		return WalletID{}, errors.Wrapf(codec.ErrUnknownWalletVersion, "failed to decode wallet id: version code %d", code)
	}

	res.Context = ClientContext{
		Workchain:       int8(uint8(word >> 23)),
		Version:         version,
		SubwalletNumber: uint16(word & MaxSubwalletNumber),
	}

	return res, nil
}
