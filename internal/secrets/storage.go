package secrets

import (
	"context"

	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
)

// Storage keeps the wallet key used by the transfer helpers.
type Storage interface {
	GetWalletSigner(ctx context.Context) (*wallet.KeySigner, error)
	SaveWalletSeed(ctx context.Context, seed []byte) error
}
