package actions

import (
	"slices"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	tagSendMsg uint64 = 0x0ec3c86d
	tagSetCode uint64 = 0xad4de08e
)

// StoreOutList encodes plain actions as an OutList. Each node references
// the list built so far, so the last action ends up in the root cell.
func StoreOutList(list []Action) (*cell.Cell, error) {
	if err := CheckCount(len(list)); err != nil {
		return nil, err
	}

	cur := cell.BeginCell().EndCell()
	for i, a := range list {
		w := codec.NewWriter().Ref(cur)
		storeOutAction(w, a)

		next, err := w.EndCell()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to store out action %d", i)
		}
		cur = next
	}

	return cur, nil
}

func storeOutAction(w *codec.Writer, a Action) {
	switch act := a.(type) {
	case SendMsg:
		if err := CheckMessage(act.Message); err != nil {
			w.Fail(err)
			return
		}
		w.Uint(tagSendMsg, 32).Uint(uint64(act.Mode), 8).Ref(act.Message)
	case SetCode:
		w.Uint(tagSetCode, 32).Ref(act.Code)
	default:
		w.Failf(codec.ErrUnsupportedNestedAction, "%s is not an out action", kindOf(a))
	}
}

// LoadOutList decodes an OutList rooted at c, restoring the original order.
func LoadOutList(c *cell.Cell) ([]Action, error) {
	var list []Action

	r := codec.NewCellReader(c)
	for r.Err() == nil && r.RefsLeft() > 0 {
		if len(list) == MaxActions {
			return nil, CheckCount(len(list) + 1)
		}

		prev := r.RefCell()
		a := loadOutAction(r)
		if err := r.Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to load out action %d", len(list))
		}

		list = append(list, a)
		r = codec.NewCellReader(prev)
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to load out list")
	}

	slices.Reverse(list)
	return list, nil
}

func loadOutAction(r *codec.Reader) Action {
	switch r.ExpectTag(32, "out action", tagSendMsg, tagSetCode) {
	case tagSendMsg:
		mode := SendMode(r.Uint(8))
		msg := r.RefCell()
		if r.Err() != nil {
			return nil
		}
		if err := CheckMessage(msg); err != nil {
			r.Fail(err)
			return nil
		}
		return SendMsg{Mode: mode, Message: msg}
	case tagSetCode:
		return SetCode{Code: r.RefCell()}
	default:
		return nil
	}
}

// OnlySendMsg rejects any decoded action other than a transfer.
func OnlySendMsg(list []Action) error {
	for i, a := range list {
		if _, ok := a.(SendMsg); !ok {
			return errors.Wrapf(codec.ErrUnsupportedNestedAction, "action %d: only send_msg is allowed, got %s", i, a.Kind())
		}
	}

	return nil
}

func kindOf(a Action) Kind {
	if a == nil {
		return "nil"
	}

	return a.Kind()
}
