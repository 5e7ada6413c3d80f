// Package walletv5r1 implements the action list, wallet id and transfer
// body formats of wallet v5r1.
package walletv5r1

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

var extendedTags = actions.ExtendedTags{
	Bits:                  8,
	SetIsPublicKeyEnabled: 0x04,
	AddExtension:          0x02,
	RemoveExtension:       0x03,
}

// StoreActions appends the list to b:
//
//	out_list:(Maybe ^OutList) has_other:(## 1) first:ExtendedAction rest:^ExtendedActions
//
// Transfers must precede extended actions; use OrderActions to
// partition a mixed list first. SetCode is not accepted.
func StoreActions(b *cell.Builder, list []actions.Action) error {
	if err := actions.CheckCount(len(list)); err != nil {
		return err
	}

	for i, a := range list {
		if _, ok := a.(actions.SetCode); ok {
			return errors.Wrapf(codec.ErrUnsupportedNestedAction, "action %d: set_code is not supported", i)
		}
	}

	extended, transfers, err := actions.SplitOrdered(list, false)
	if err != nil {
		return err
	}

	w := codec.WrapBuilder(b)
	if len(transfers) > 0 {
		outList, err := actions.StoreOutList(transfers)
		if err != nil {
			return errors.Wrap(err, "failed to store out list")
		}
		w.MaybeRef(outList)
	} else {
		w.MaybeRef(nil)
	}

	if len(extended) == 0 {
		w.Bit(false)
		return w.Err()
	}

	w.Bit(true)
	actions.StoreExtended(w, extendedTags, extended[0])
	if len(extended) > 1 {
		rest, err := packExtended(extended[1:])
		if err != nil {
			return err
		}
		w.Ref(rest)
	}

	return errors.Wrap(w.Err(), "failed to store extended actions")
}

// packExtended chains actions one per cell, each cell referencing the next.
func packExtended(list []actions.Action) (*cell.Cell, error) {
	var next *cell.Cell
	for i := len(list) - 1; i >= 0; i-- {
		w := codec.NewWriter()
		actions.StoreExtended(w, extendedTags, list[i])
		if next != nil {
			w.Ref(next)
		}

		c, err := w.EndCell()
		if err != nil {
			return nil, errors.Wrap(err, "failed to store extended actions")
		}
		next = c
	}

	return next, nil
}

func EncodeActions(list []actions.Action) (*cell.Cell, error) {
	b := cell.BeginCell()
	if err := StoreActions(b, list); err != nil {
		return nil, err
	}

	return b.EndCell(), nil
}

// LoadActions reads an action list, transfers first.
func LoadActions(s *cell.Slice) ([]actions.Action, error) {
	r := codec.NewReader(s)

	var list []actions.Action
	if outList, ok := r.MaybeRefCell(); ok {
		transfers, err := actions.LoadOutList(outList)
		if err != nil {
			return nil, err
		}
		if err = actions.OnlySendMsg(transfers); err != nil {
			return nil, err
		}
		list = transfers
	}

	if r.Bit() {
		list = append(list, actions.LoadExtended(r, extendedTags))
	}

	for r.Err() == nil && r.RefsLeft() > 0 {
		if err := actions.CheckCount(len(list) + 1); err != nil {
			return nil, err
		}

		r = r.Ref()
		list = append(list, actions.LoadExtended(r, extendedTags))
	}

	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load actions")
	}
	if err := actions.CheckCount(len(list)); err != nil {
		return nil, err
	}

	return list, nil
}

func DecodeActions(c *cell.Cell) ([]actions.Action, error) {
	if c == nil {
		return nil, errors.Wrap(codec.ErrStructuralExhaustion, "nil cell")
	}

	return LoadActions(c.BeginParse())
}

// OrderActions moves transfers in front of extended actions keeping the
// relative order inside each group.
func OrderActions(list []actions.Action) []actions.Action {
	res := make([]actions.Action, 0, len(list))
	for _, a := range list {
		if !actions.IsExtended(a) {
			res = append(res, a)
		}
	}
	for _, a := range list {
		if actions.IsExtended(a) {
			res = append(res, a)
		}
	}

	return res
}

// SafeSendMode forces IgnoreErrors on externally authorized transfers.
// Internal and extension requests keep the mode as is.
func SafeSendMode(mode actions.SendMode, auth wallet.AuthType) actions.SendMode {
	if auth == wallet.AuthInternal || auth == wallet.AuthExtension {
		return mode
	}

	return mode | actions.SendModeIgnoreErrors
}

// PatchSendModes applies SafeSendMode to every transfer and returns a new list.
func PatchSendModes(list []actions.Action, auth wallet.AuthType) []actions.Action {
	res := make([]actions.Action, len(list))
	for i, a := range list {
		if msg, ok := a.(actions.SendMsg); ok {
			msg.Mode = SafeSendMode(msg.Mode, auth)
			a = msg
		}
		res[i] = a
	}

	return res
}
