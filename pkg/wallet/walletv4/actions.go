// Package walletv4 implements the wallet v4 request format: a single
// flat action selected by an 8-bit kind.
package walletv4

import (
	"math/big"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	opTransfer           = 0
	opAddAndDeployPlugin = 1
	opAddPlugin          = 2
	opRemovePlugin       = 3

	MaxMessages = actions.MaxBatchMessages
)

type Action interface {
	Kind() actions.Kind
	isAction()
}

const (
	KindAddAndDeployPlugin actions.Kind = "add_and_deploy_plugin"
	KindAddPlugin          actions.Kind = "add_plugin"
	KindRemovePlugin       actions.Kind = "remove_plugin"
)

// TransferBatch sends every message with the same mode.
type TransferBatch struct {
	Mode     actions.SendMode `json:"mode"`
	Messages []*cell.Cell     `json:"-"`
}

type AddAndDeployPlugin struct {
	Workchain     int8           `json:"workchain"`
	StateInit     *tlb.StateInit `json:"-"`
	Body          *cell.Cell     `json:"-"`
	ForwardAmount *big.Int       `json:"forward_amount"`
}

type AddPlugin struct {
	Address       *address.Address `json:"address"`
	ForwardAmount *big.Int         `json:"forward_amount"`
	QueryID       uint64           `json:"query_id"`
}

type RemovePlugin struct {
	Address       *address.Address `json:"address"`
	ForwardAmount *big.Int         `json:"forward_amount"`
	QueryID       uint64           `json:"query_id"`
}

func (TransferBatch) Kind() actions.Kind      { return actions.KindSendMsg }
func (AddAndDeployPlugin) Kind() actions.Kind { return KindAddAndDeployPlugin }
func (AddPlugin) Kind() actions.Kind          { return KindAddPlugin }
func (RemovePlugin) Kind() actions.Kind       { return KindRemovePlugin }

func (TransferBatch) isAction()      {}
func (AddAndDeployPlugin) isAction() {}
func (AddPlugin) isAction()          {}
func (RemovePlugin) isAction()       {}

// StoreAction appends the action to b.
func StoreAction(b *cell.Builder, a Action) error {
	w := codec.WrapBuilder(b)

	switch act := a.(type) {
	case TransferBatch:
		w.Uint(opTransfer, 8)
		if err := actions.StoreBatch(w, actions.Batch(act), MaxMessages); err != nil {
			return err
		}
	case AddAndDeployPlugin:
		if act.StateInit == nil {
			return errors.New("add_and_deploy_plugin without state init")
		}

		stateInit, err := tlb.ToCell(act.StateInit)
		if err != nil {
			return errors.Wrap(err, "failed to serialize state init")
		}

		w.Uint(opAddAndDeployPlugin, 8).
			Int(int64(act.Workchain), 8).
			Coins(act.ForwardAmount).
			Ref(stateInit).
			Ref(act.Body)
	case AddPlugin:
		storePlugin(w, opAddPlugin, act.Address, act.ForwardAmount, act.QueryID)
	case RemovePlugin:
		storePlugin(w, opRemovePlugin, act.Address, act.ForwardAmount, act.QueryID)
	default:
		return errors.Wrapf(codec.ErrUnsupportedNestedAction, "unsupported wallet v4 action %T", a)
	}

	return errors.Wrap(w.Err(), "failed to store action")
}

func storePlugin(w *codec.Writer, op uint64, addr *address.Address, amount *big.Int, queryID uint64) {
	if addr == nil {
		w.Failf(codec.ErrRangeViolation, "plugin address is not set")
		return
	}

	w.Uint(op, 8).
		Int(int64(addr.Workchain()), 8).
		Bytes(addr.Data()).
		Coins(amount).
		Uint(queryID, 64)
}

func EncodeAction(a Action) (*cell.Cell, error) {
	b := cell.BeginCell()
	if err := StoreAction(b, a); err != nil {
		return nil, err
	}

	return b.EndCell(), nil
}

// LoadAction reads a single action. A transfer consumes every remaining
// reference and fails when the messages disagree on the send mode.
func LoadAction(s *cell.Slice) (Action, error) {
	r := codec.NewReader(s)

	tag := r.ExpectTag(8, "wallet v4 action", opTransfer, opAddAndDeployPlugin, opAddPlugin, opRemovePlugin)
	if err := r.Err(); err != nil {
		return nil, err
	}

	var res Action
	switch tag {
	case opTransfer:
		transfer, err := loadTransfer(r)
		if err != nil {
			return nil, err
		}
		res = transfer
	case opAddAndDeployPlugin:
		act := AddAndDeployPlugin{
			Workchain:     int8(r.Int(8)),
			ForwardAmount: r.Coins(),
		}
		stateInit := r.RefCell()
		act.Body = r.RefCell()
		if err := r.Err(); err != nil {
			return nil, errors.Wrap(err, "failed to load add_and_deploy_plugin")
		}

		var si tlb.StateInit
		if err := tlb.LoadFromCell(&si, stateInit.BeginParse()); err != nil {
			return nil, errors.Wrap(err, "failed to parse state init")
		}
		act.StateInit = &si
		res = act
	case opAddPlugin:
		addr, amount, queryID := loadPlugin(r)
		res = AddPlugin{Address: addr, ForwardAmount: amount, QueryID: queryID}
	case opRemovePlugin:
		addr, amount, queryID := loadPlugin(r)
		res = RemovePlugin{Address: addr, ForwardAmount: amount, QueryID: queryID}
	}

	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load action")
	}

	return res, nil
}

func loadTransfer(r *codec.Reader) (TransferBatch, error) {
	batch, err := actions.LoadBatch(r, MaxMessages)
	if err != nil {
		return TransferBatch{}, err
	}

	return TransferBatch(batch), nil
}

func loadPlugin(r *codec.Reader) (*address.Address, *big.Int, uint64) {
	wc := int8(r.Int(8))
	hash := r.Bytes(32)
	amount := r.Coins()
	queryID := r.Uint(64)
	if r.Err() != nil {
		return nil, nil, 0
	}

	return address.NewAddress(0, byte(wc), hash), amount, queryID
}

func DecodeAction(c *cell.Cell) (Action, error) {
	if c == nil {
		return nil, errors.Wrap(codec.ErrStructuralExhaustion, "nil cell")
	}

	return LoadAction(c.BeginParse())
}
