// Package walletv1 implements the wallet v1 request format: a seqno and
// at most one message.
package walletv1

import (
	"context"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const MaxMessages = 1

type TransferArgs struct {
	Seqno    uint32
	Transfer actions.Batch
}

// SigningMessage builds seqno:uint32 followed by an optional mode and message.
func SigningMessage(args TransferArgs) (*cell.Cell, error) {
	w := codec.NewWriter().Uint(uint64(args.Seqno), 32)
	if err := actions.StoreBatch(w, args.Transfer, MaxMessages); err != nil {
		return nil, err
	}

	return w.EndCell()
}

func Transfer(ctx context.Context, signer wallet.Signer, args TransferArgs) (*cell.Cell, error) {
	if signer == nil {
		return nil, errors.New("signer is required")
	}

	payload, err := SigningMessage(args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build signing message")
	}

	return wallet.SignBody(ctx, signer, payload, wallet.PackSignatureFront)
}

type Request struct {
	Seqno     uint32        `json:"seqno"`
	Transfer  actions.Batch `json:"-"`
	Signature []byte        `json:"signature"`
}

// ParseRequest decodes a signed body built by Transfer.
func ParseRequest(body *cell.Cell) (*Request, error) {
	payload, sig, err := wallet.SplitSignatureFront(body)
	if err != nil {
		return nil, errors.Wrap(codec.ErrStructuralExhaustion, err.Error())
	}

	r := codec.NewCellReader(payload)
	res := &Request{
		Seqno:     uint32(r.Uint(32)),
		Signature: sig,
	}
	if err = r.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load request header")
	}

	if res.Transfer, err = actions.LoadBatch(r, MaxMessages); err != nil {
		return nil, err
	}

	return res, nil
}
