package vault

import (
	"context"
	"crypto/ed25519"

	"github.com/Bridgeless-Project/ton-kit/internal/secrets"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/ethereum/go-ethereum/common/hexutil"
	client "github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

const (
	keyWalletSeed = "wallet_seed"
	valueField    = "value"
)

var ErrNotFound = errors.New("secret not found")

var _ secrets.Storage = &Storage{}

type Storage struct {
	client *client.KVv2
	path   string
}

func NewStorage(client *client.KVv2, path string) *Storage {
	return &Storage{
		client: client,
		path:   path,
	}
}

func (s *Storage) GetWalletSigner(ctx context.Context) (*wallet.KeySigner, error) {
	kvData, err := s.client.Get(ctx, s.key(keyWalletSeed))
	if err != nil {
		if errors.Is(err, client.ErrSecretNotFound) {
			return nil, errors.Wrap(ErrNotFound, keyWalletSeed)
		}
		return nil, errors.Wrap(err, "failed to load wallet seed")
	}
	if kvData == nil {
		return nil, errors.Wrap(ErrNotFound, keyWalletSeed)
	}

	seed, err := decodeSeed(kvData.Data)
	if err != nil {
		return nil, err
	}

	return wallet.NewKeySignerFromSeed(seed)
}

func (s *Storage) SaveWalletSeed(ctx context.Context, seed []byte) error {
	if len(seed) != ed25519.SeedSize {
		return errors.Errorf("invalid seed size %d", len(seed))
	}

	_, err := s.client.Put(ctx, s.key(keyWalletSeed), map[string]interface{}{
		valueField: hexutil.Encode(seed),
	})
	if err != nil {
		return errors.Wrap(err, "failed to save wallet seed")
	}

	return nil
}

func (s *Storage) key(name string) string {
	if s.path == "" {
		return name
	}

	return s.path + "/" + name
}

func decodeSeed(data map[string]interface{}) ([]byte, error) {
	val, ok := data[valueField].(string)
	if !ok {
		return nil, errors.New("wallet seed value not found")
	}

	seed, err := hexutil.Decode(val)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode wallet seed")
	}
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Errorf("invalid seed size %d", len(seed))
	}

	return seed, nil
}
