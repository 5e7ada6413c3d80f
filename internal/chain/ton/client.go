package ton

import (
	"context"
	"crypto/ed25519"

	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/ton"
	"gitlab.com/distributed_lab/logan/v3"
)

// Snapshot is the raw blockchain config of one masterchain block.
type Snapshot struct {
	Seqno  uint32
	Params tonconfig.Params
}

type Client struct {
	rpc    RPC
	api    ton.APIClientWrapped
	logger *logan.Entry
}

// NewClient connects to the lite servers listed in the global config.
func NewClient(ctx context.Context, rpc RPC, logger *logan.Entry) (*Client, error) {
	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, rpc.GlobalConfigUrl); err != nil {
		return nil, errors.Wrap(err, "failed to connect to lite servers")
	}

	globalConfig, err := liteclient.GetConfigFromUrl(ctx, rpc.GlobalConfigUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get global config")
	}

	api := ton.NewAPIClient(pool, ton.ProofCheckPolicyFast)
	api.SetTrustedBlockFromConfig(globalConfig)

	return &Client{
		rpc:    rpc,
		api:    api.WithRetry().WithTimeout(rpc.Timeout),
		logger: logger,
	}, nil
}

func (c *Client) NetworkGlobalID() int32 {
	return c.rpc.NetworkGlobalID()
}

// FetchConfig loads the config of the latest masterchain block. With ids
// only those parameters are requested.
func (c *Client) FetchConfig(ctx context.Context, ids ...int32) (*Snapshot, error) {
	block, err := c.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get masterchain info")
	}

	cfg, err := c.api.GetBlockchainConfig(ctx, block, ids...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get blockchain config at %d", block.SeqNo)
	}

	params := tonconfig.Params(cfg.All())
	c.logger.WithFields(logan.F{
		"seqno":  block.SeqNo,
		"params": len(params),
	}).Debug("fetched blockchain config")

	return &Snapshot{Seqno: block.SeqNo, Params: params}, nil
}

const (
	seqnoMethod     = "seqno"
	publicKeyMethod = "get_public_key"
)

// WalletSeqno runs the seqno get method of a wallet. A nil addr means the
// configured wallet.
func (c *Client) WalletSeqno(ctx context.Context, addr *address.Address) (uint32, error) {
	res, err := c.runWalletMethod(ctx, addr, seqnoMethod)
	if err != nil {
		return 0, err
	}

	seqno, err := res.Int(0)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read seqno")
	}
	if !seqno.IsUint64() || seqno.Uint64() > 0xffffffff {
		return 0, errors.Errorf("seqno %s out of range", seqno)
	}

	return uint32(seqno.Uint64()), nil
}

// WalletPublicKey runs the get_public_key get method of a wallet.
func (c *Client) WalletPublicKey(ctx context.Context, addr *address.Address) (ed25519.PublicKey, error) {
	res, err := c.runWalletMethod(ctx, addr, publicKeyMethod)
	if err != nil {
		return nil, err
	}

	key, err := res.Int(0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read public key")
	}

	return key.FillBytes(make([]byte, ed25519.PublicKeySize)), nil
}

func (c *Client) runWalletMethod(ctx context.Context, addr *address.Address, method string) (*ton.ExecutionResult, error) {
	if addr == nil {
		addr = c.rpc.Wallet
	}
	if addr == nil {
		return nil, errors.New("wallet address is not configured")
	}

	block, err := c.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get masterchain info")
	}

	res, err := c.api.RunGetMethod(ctx, block, addr, method)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %s on %s", method, addr)
	}

	return res, nil
}

// HealthCheck pings the lite servers.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.api.CurrentMasterchainInfo(ctx)
	return errors.Wrap(err, "failed to reach lite servers")
}
