package walletv5beta

import (
	"context"
	"time"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

type TransferArgs struct {
	AuthType   wallet.AuthType
	WalletID   WalletID
	Seqno      uint32
	ValidUntil uint32
	Actions    []actions.Action
}

func SigningMessage(args TransferArgs, now time.Time) (*cell.Cell, error) {
	if err := actions.CheckCount(len(args.Actions)); err != nil {
		return nil, err
	}

	op, err := args.AuthType.SignedOpcode()
	if err != nil {
		return nil, err
	}

	w := codec.NewWriter().Uint(op, 32)
	args.WalletID.store(w)
	w.Uint(uint64(wallet.ValidUntil(args.Seqno, args.ValidUntil, now)), 32).
		Uint(uint64(args.Seqno), 32)
	if err = w.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to store signing message header")
	}

	if err = StoreActions(w.Builder(), args.Actions); err != nil {
		return nil, errors.Wrap(err, "failed to store actions")
	}

	return w.EndCell()
}

// ExtensionBody builds an unsigned request sent by an installed extension.
func ExtensionBody(list []actions.Action) (*cell.Cell, error) {
	if err := actions.CheckCount(len(list)); err != nil {
		return nil, err
	}

	w := codec.NewWriter().Uint(wallet.OpAuthExtension, 32)
	if err := StoreActions(w.Builder(), list); err != nil {
		return nil, errors.Wrap(err, "failed to store actions")
	}

	return w.EndCell()
}

func Transfer(ctx context.Context, signer wallet.Signer, args TransferArgs) (*cell.Cell, error) {
	if err := args.AuthType.Validate(); err != nil {
		return nil, err
	}

	if args.AuthType == wallet.AuthExtension {
		return ExtensionBody(args.Actions)
	}

	if signer == nil {
		return nil, errors.New("signer is required for signed requests")
	}

	payload, err := SigningMessage(args, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build signing message")
	}

	return wallet.SignBody(ctx, signer, payload, wallet.PackSignatureTail)
}
