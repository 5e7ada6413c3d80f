// Package walletv5beta implements the deprecated wallet v5 beta request
// format: extended actions chained through single references ahead of a
// trailing OutList of transfers.
package walletv5beta

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

var extendedTags = actions.ExtendedTags{
	Bits:                  32,
	SetIsPublicKeyEnabled: 0x20cbb95a,
	AddExtension:          0x1c40db9f,
	RemoveExtension:       0x5eaef4a4,
}

// StoreActions appends the list to b. Every extended action is a node
//
//	$1 action:ExtendedAction next:^ActionList
//
// and the chain ends with $0 out_list:^OutList holding the transfers.
func StoreActions(b *cell.Builder, list []actions.Action) error {
	if err := actions.CheckCount(len(list)); err != nil {
		return err
	}

	extended, transfers, err := actions.SplitOrdered(list, true)
	if err != nil {
		return err
	}
	if err = actions.OnlySendMsg(transfers); err != nil {
		return err
	}

	outList, err := actions.StoreOutList(transfers)
	if err != nil {
		return errors.Wrap(err, "failed to store out list")
	}

	if len(extended) == 0 {
		w := codec.WrapBuilder(b).Bit(false).Ref(outList)
		return w.Err()
	}

	next, err := codec.NewWriter().Bit(false).Ref(outList).EndCell()
	if err != nil {
		return err
	}
	for i := len(extended) - 1; i > 0; i-- {
		w := codec.NewWriter().Bit(true)
		actions.StoreExtended(w, extendedTags, extended[i])
		if next, err = w.Ref(next).EndCell(); err != nil {
			return errors.Wrapf(err, "failed to store extended action %d", i)
		}
	}

	w := codec.WrapBuilder(b).Bit(true)
	actions.StoreExtended(w, extendedTags, extended[0])
	w.Ref(next)

	return errors.Wrap(w.Err(), "failed to store extended action 0")
}

func EncodeActions(list []actions.Action) (*cell.Cell, error) {
	b := cell.BeginCell()
	if err := StoreActions(b, list); err != nil {
		return nil, err
	}

	return b.EndCell(), nil
}

// LoadActions walks the extended chain and then decodes the trailing
// out list, which may hold transfers only.
func LoadActions(s *cell.Slice) ([]actions.Action, error) {
	r := codec.NewReader(s)

	var list []actions.Action
	for r.Bit() {
		if err := actions.CheckCount(len(list) + 1); err != nil {
			return nil, err
		}

		list = append(list, actions.LoadExtended(r, extendedTags))
		r = r.Ref()
	}

	outList := r.RefCell()
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load actions")
	}

	transfers, err := actions.LoadOutList(outList)
	if err != nil {
		return nil, err
	}
	if err = actions.OnlySendMsg(transfers); err != nil {
		return nil, err
	}

	list = append(list, transfers...)
	if err = actions.CheckCount(len(list)); err != nil {
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
