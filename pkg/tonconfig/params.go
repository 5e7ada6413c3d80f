// Package tonconfig decodes TON blockchain configuration parameters
// into typed Go structures.
package tonconfig

import (
	"slices"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Params maps parameter ids to their raw value cells. It is safe for
// concurrent use as long as nobody modifies the map: every Slice call
// hands out a fresh cursor.
type Params map[int32]*cell.Cell

// Slice returns a new cursor over parameter id, or nil when the
// parameter is absent.
func (p Params) Slice(id int32) *cell.Slice {
	c, ok := p[id]
	if !ok || c == nil {
		return nil
	}

	return c.BeginParse()
}

// IDs returns the present parameter ids in ascending order.
func (p Params) IDs() []int32 {
	ids := make([]int32, 0, len(p))
	for id, c := range p {
		if c != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	return ids
}

// LoadParams decodes the config root, a Hashmap 32 ^Cell keyed by
// signed parameter ids.
func LoadParams(root *cell.Cell) (Params, error) {
	if root == nil {
		return nil, errors.Wrap(codec.ErrStructuralExhaustion, "nil config root")
	}

	d, err := dict.FromCell(root, dict.Int[int32](32), func(r *codec.Reader) (*cell.Cell, error) {
		c := r.RefCell()
		return c, r.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config dictionary")
	}

	params := make(Params, d.Len())
	for _, e := range d.Entries() {
		params[e.Key] = e.Value
	}

	return params, nil
}

// LoadParamsFromBOC is LoadParams over a serialized bag of cells.
func LoadParamsFromBOC(boc []byte) (Params, error) {
	root, err := cell.FromBOC(boc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config boc")
	}

	return LoadParams(root)
}
