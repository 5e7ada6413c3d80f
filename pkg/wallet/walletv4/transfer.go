package walletv4

import (
	"context"
	"time"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// DefaultWalletID is the subwallet id of a basechain v4 wallet. Other
// workchains add their id to it.
const DefaultWalletID uint32 = 698983191

type TransferArgs struct {
	WalletID   uint32
	Seqno      uint32
	ValidUntil uint32
	Action     Action
}

// SigningMessage builds wallet_id:uint32 valid_until:uint32 seqno:uint32 action.
func SigningMessage(args TransferArgs, now time.Time) (*cell.Cell, error) {
	w := codec.NewWriter().
		Uint(uint64(args.WalletID), 32).
		Uint(uint64(wallet.ValidUntil(args.Seqno, args.ValidUntil, now)), 32).
		Uint(uint64(args.Seqno), 32)
	if err := w.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to store signing message header")
	}

	if err := StoreAction(w.Builder(), args.Action); err != nil {
		return nil, err
	}

	return w.EndCell()
}

// Transfer signs the request and puts the signature in front of it.
func Transfer(ctx context.Context, signer wallet.Signer, args TransferArgs) (*cell.Cell, error) {
	if signer == nil {
		return nil, errors.New("signer is required")
	}

	payload, err := SigningMessage(args, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build signing message")
	}

	return wallet.SignBody(ctx, signer, payload, wallet.PackSignatureFront)
}

type Request struct {
	WalletID   uint32 `json:"wallet_id"`
	ValidUntil uint32 `json:"valid_until"`
	Seqno      uint32 `json:"seqno"`
	Action     Action `json:"-"`
	Signature  []byte `json:"signature"`
}

// ParseRequest decodes a signed body built by Transfer.
func ParseRequest(body *cell.Cell) (*Request, error) {
	payload, sig, err := wallet.SplitSignatureFront(body)
	if err != nil {
		return nil, errors.Wrap(codec.ErrStructuralExhaustion, err.Error())
	}

	r := codec.NewCellReader(payload)
	res := &Request{
		WalletID:   uint32(r.Uint(32)),
		ValidUntil: uint32(r.Uint(32)),
		Seqno:      uint32(r.Uint(32)),
		Signature:  sig,
	}
	if err = r.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load request header")
	}

	rest := r.Rest()
	if err = r.Err(); err != nil {
		return nil, err
	}

	if res.Action, err = LoadAction(rest.BeginParse()); err != nil {
		return nil, err
	}

	return res, nil
}
