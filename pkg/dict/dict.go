// Package dict decodes TON hashmaps (Hashmap and HashmapE) into
// key-ordered Go collections.
package dict

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// ValueDecoder decodes one dictionary value. The reader is positioned
// at the start of the value.
type ValueDecoder[V any] func(r *codec.Reader) (V, error)

// None decodes the empty values of Hashmap n True and Hashmap n Unit.
func None(*codec.Reader) (struct{}, error) {
	return struct{}{}, nil
}

type Entry[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Dict is an immutable dictionary with entries sorted by the unsigned
// bit pattern of their keys.
type Dict[K, V any] struct {
	entries []Entry[K, V]
	equal   func(a, b K) bool
}

func (d Dict[K, V]) Len() int { return len(d.entries) }

func (d Dict[K, V]) IsEmpty() bool { return len(d.entries) == 0 }

func (d Dict[K, V]) Entries() []Entry[K, V] {
	return slices.Clone(d.entries)
}

func (d Dict[K, V]) Keys() []K {
	keys := make([]K, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}

	return keys
}

func (d Dict[K, V]) Values() []V {
	values := make([]V, len(d.entries))
	for i, e := range d.entries {
		values[i] = e.Value
	}

	return values
}

func (d Dict[K, V]) Get(key K) (V, bool) {
	for _, e := range d.entries {
		if d.equal != nil && d.equal(e.Key, key) {
			return e.Value, true
		}
	}

	var zero V
	return zero, false
}

func (d Dict[K, V]) MarshalJSON() ([]byte, error) {
	if d.entries == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(d.entries)
}

// Load reads a HashmapE: a presence bit followed, when set, by a
// reference to the hashmap root. An absent dictionary decodes as empty.
func Load[K, V any](r *codec.Reader, key Key[K], value ValueDecoder[V]) (Dict[K, V], error) {
	root, present := r.MaybeRefCell()
	if err := r.Err(); err != nil {
		return Dict[K, V]{}, errors.Wrap(err, "failed to load dictionary root")
	}
	if !present {
		return Dict[K, V]{equal: key.equal}, nil
	}

	return decode(root, key, value)
}

// LoadDirect reads a Hashmap stored inline: the rest of the reader is
// the hashmap root.
func LoadDirect[K, V any](r *codec.Reader, key Key[K], value ValueDecoder[V]) (Dict[K, V], error) {
	if r.Err() == nil && r.BitsLeft() == 0 {
		r.Fail(errors.Wrap(codec.ErrStructuralExhaustion, "empty hashmap root"))
	}

	root := r.Rest()
	if err := r.Err(); err != nil {
		return Dict[K, V]{}, errors.Wrap(err, "failed to load dictionary root")
	}

	return decode(root, key, value)
}

// FromCell decodes a hashmap whose root is c.
func FromCell[K, V any](c *cell.Cell, key Key[K], value ValueDecoder[V]) (Dict[K, V], error) {
	if c == nil {
		return Dict[K, V]{}, errors.Wrap(codec.ErrStructuralExhaustion, "nil dictionary root")
	}

	return decode(c, key, value)
}

type rawEntry[K, V any] struct {
	raw   []byte
	entry Entry[K, V]
}

func decode[K, V any](root *cell.Cell, key Key[K], value ValueDecoder[V]) (Dict[K, V], error) {
	kvs, err := root.AsDict(key.bits).LoadAll()
	if err != nil {
		return Dict[K, V]{}, errors.Wrapf(codec.ErrStructuralExhaustion, "failed to walk dictionary: %s", err)
	}

	entries := make([]rawEntry[K, V], 0, len(kvs))
	for _, kv := range kvs {
		kr := codec.NewReader(kv.Key)
		raw := kr.Bits(key.bits)
		if err = kr.Err(); err != nil {
			return Dict[K, V]{}, errors.Wrap(err, "failed to read dictionary key")
		}

		k := key.decode(raw)
		v, err := value(codec.NewReader(kv.Value))
		if err != nil {
			return Dict[K, V]{}, errors.Wrapf(err, "failed to decode value for key %v", k)
		}

		entries = append(entries, rawEntry[K, V]{raw: raw, entry: Entry[K, V]{Key: k, Value: v}})
	}

	slices.SortFunc(entries, func(a, b rawEntry[K, V]) int {
		return bytes.Compare(a.raw, b.raw)
	})

	result := Dict[K, V]{
		entries: make([]Entry[K, V], len(entries)),
		equal:   key.equal,
	}
	for i, e := range entries {
		result.entries[i] = e.entry
	}

	return result, nil
}
