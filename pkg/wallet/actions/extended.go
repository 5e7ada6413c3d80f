package actions

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
)

// ExtendedTags selects the wire tags of the extended actions for one
// wallet generation.
type ExtendedTags struct {
	Bits                  uint
	SetIsPublicKeyEnabled uint64
	AddExtension          uint64
	RemoveExtension       uint64
}

// StoreExtended writes a single tagged extended action.
func StoreExtended(w *codec.Writer, tags ExtendedTags, a Action) {
	switch act := a.(type) {
	case SetIsPublicKeyEnabled:
		w.Uint(tags.SetIsPublicKeyEnabled, tags.Bits).Bit(act.Enabled)
	case AddExtension:
		if act.Address == nil {
			w.Failf(codec.ErrRangeViolation, "add_extension without address")
			return
		}
		w.Uint(tags.AddExtension, tags.Bits).Addr(act.Address)
	case RemoveExtension:
		if act.Address == nil {
			w.Failf(codec.ErrRangeViolation, "remove_extension without address")
			return
		}
		w.Uint(tags.RemoveExtension, tags.Bits).Addr(act.Address)
	default:
		w.Failf(codec.ErrUnsupportedNestedAction, "%s is not an extended action", kindOf(a))
	}
}

// LoadExtended reads a single tagged extended action. Unknown tags fail
// with codec.ErrTagMismatch.
func LoadExtended(r *codec.Reader, tags ExtendedTags) Action {
	tag := r.ExpectTag(tags.Bits, "extended action",
		tags.SetIsPublicKeyEnabled, tags.AddExtension, tags.RemoveExtension)
	if r.Err() != nil {
		return nil
	}

	switch tag {
	case tags.SetIsPublicKeyEnabled:
		return SetIsPublicKeyEnabled{Enabled: r.Bit()}
	case tags.AddExtension:
		return AddExtension{Address: r.Addr()}
	default:
		return RemoveExtension{Address: r.Addr()}
	}
}

// SplitOrdered checks that the two groups of list are not interleaved
// and returns them. With extendedFirst every extended action must come
// before every other action, otherwise after. Order inside each group
// is kept.
func SplitOrdered(list []Action, extendedFirst bool) (extended, plain []Action, err error) {
	for i, a := range list {
		if a == nil {
			return nil, nil, errors.Wrapf(codec.ErrUnsupportedNestedAction, "action %d is nil", i)
		}

		if IsExtended(a) {
			if extendedFirst && len(plain) > 0 {
				return nil, nil, orderErr(i, a)
			}
			extended = append(extended, a)
			continue
		}

		if !extendedFirst && len(extended) > 0 {
			return nil, nil, orderErr(i, a)
		}
		plain = append(plain, a)
	}

	return extended, plain, nil
}

func orderErr(i int, a Action) error {
	return errors.Wrapf(codec.ErrActionOrder, "action %d (%s) breaks transfer/extended ordering", i, a.Kind())
}
