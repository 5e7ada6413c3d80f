package walletv5r1

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
	AuthType wallet.AuthType
	WalletID WalletID
	Seqno    uint32
	// ValidUntil overrides the default expiration of now + wallet.DefaultTimeout.
	ValidUntil uint32
	// QueryID is only written for extension requests.
	QueryID uint64
	Actions []actions.Action
}

// SigningMessage builds the unsigned body of a signed request. Transfers
// of external requests are rewritten with SafeSendMode.
func SigningMessage(args TransferArgs, now time.Time) (*cell.Cell, error) {
	if err := actions.CheckCount(len(args.Actions)); err != nil {
		return nil, err
	}

	op, err := args.AuthType.SignedOpcode()
	if err != nil {
		return nil, err
	}

	walletID, err := args.WalletID.Encode()
	if err != nil {
		return nil, err
	}

	w := codec.NewWriter().
		Uint(op, 32).
		Int(int64(walletID), 32).
		Uint(uint64(wallet.ValidUntil(args.Seqno, args.ValidUntil, now)), 32).
		Uint(uint64(args.Seqno), 32)
	if err = w.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to store signing message header")
	}

	if err = StoreActions(w.Builder(), PatchSendModes(args.Actions, args.AuthType)); err != nil {
		return nil, errors.Wrap(err, "failed to store actions")
	}

	return w.EndCell()
}

// ExtensionBody builds the request an installed extension sends to the wallet.
func ExtensionBody(queryID uint64, list []actions.Action) (*cell.Cell, error) {
	if err := actions.CheckCount(len(list)); err != nil {
		return nil, err
	}

	w := codec.NewWriter().Uint(wallet.OpAuthExtension, 32).Uint(queryID, 64)
	if err := w.Err(); err != nil {
		return nil, err
	}

	if err := StoreActions(w.Builder(), list); err != nil {
		return nil, errors.Wrap(err, "failed to store actions")
	}

	return w.EndCell()
}

// Transfer builds a complete request body. Extension requests are not
// signed and signer may be nil for them.
func Transfer(ctx context.Context, signer wallet.Signer, args TransferArgs) (*cell.Cell, error) {
	if err := args.AuthType.Validate(); err != nil {
		return nil, err
	}

	if args.AuthType == wallet.AuthExtension {
		return ExtensionBody(args.QueryID, args.Actions)
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

// Request is a decoded request body.
type Request struct {
	Opcode     uint64           `json:"opcode"`
	WalletID   *WalletID        `json:"wallet_id,omitempty"`
	ValidUntil uint32           `json:"valid_until,omitempty"`
	Seqno      uint32           `json:"seqno,omitempty"`
	QueryID    uint64           `json:"query_id,omitempty"`
	Actions    []actions.Action `json:"-"`
	Signature  []byte           `json:"signature,omitempty"`
}

// ParseRequest decodes a body built by Transfer. networkGlobalID is needed
// to recover the wallet id context.
func ParseRequest(body *cell.Cell, networkGlobalID int32) (*Request, error) {
	r := codec.NewCellReader(body)

	res := &Request{
		Opcode: r.ExpectTag(32, "wallet v5r1 request",
			wallet.OpAuthExtension, wallet.OpAuthSignedExternal, wallet.OpAuthSignedInternal),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	if res.Opcode == wallet.OpAuthExtension {
		res.QueryID = r.Uint(64)
		if err := r.Err(); err != nil {
			return nil, err
		}

		rest := r.Rest()
		if err := r.Err(); err != nil {
			return nil, err
		}

		list, err := LoadActions(rest.BeginParse())
		if err != nil {
			return nil, err
		}
		res.Actions = list
		return res, nil
	}

	rawID := int32(r.Int(32))
	res.ValidUntil = uint32(r.Uint(32))
	res.Seqno = uint32(r.Uint(32))
	if err := r.Err(); err != nil {
		return nil, err
	}
	if r.BitsLeft() < wallet.SignatureSize*8 {
		return nil, errors.Wrap(codec.ErrStructuralExhaustion, "no room for signature")
	}

	id, err := DecodeWalletID(rawID, networkGlobalID)
	if err != nil {
		return nil, err
	}
	res.WalletID = &id

	rest := r.Rest()
	if err = r.Err(); err != nil {
		return nil, err
	}

	payload, sig, err := wallet.SplitSignatureTail(rest)
	if err != nil {
		return nil, err
	}
	res.Signature = sig

	list, err := LoadActions(payload.BeginParse())
	if err != nil {
		return nil, err
	}
	res.Actions = list

	return res, nil
}
