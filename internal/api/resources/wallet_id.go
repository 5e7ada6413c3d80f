package resources

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
)

const (
	ContextClient = "client"
	ContextCustom = "custom"
)

type WalletID struct {
	Value           int32               `json:"value"`
	NetworkGlobalID int32               `json:"network_global_id"`
	ContextType     string              `json:"context_type"`
	Workchain       *int8               `json:"workchain,omitempty"`
	Version         *walletv5r1.Version `json:"wallet_version,omitempty"`
	SubwalletNumber *uint16             `json:"subwallet_number,omitempty"`
	CustomContext   *uint32             `json:"custom_context,omitempty"`
}

func FromWalletID(value int32, id walletv5r1.WalletID) WalletID {
	res := WalletID{Value: value, NetworkGlobalID: id.NetworkGlobalID}

	switch c := id.Context.(type) {
	case walletv5r1.ClientContext:
		res.ContextType = ContextClient
		res.Workchain = ptr(c.Workchain)
		res.Version = ptr(c.Version)
		res.SubwalletNumber = ptr(c.SubwalletNumber)
	case walletv5r1.CustomContext:
		res.ContextType = ContextCustom
		res.CustomContext = ptr(uint32(c))
	}

	return res
}
