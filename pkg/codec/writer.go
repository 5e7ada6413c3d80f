package codec

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Writer mirrors Reader on top of a cell builder.
type Writer struct {
	b   *cell.Builder
	err error
}

func NewWriter() *Writer {
	return &Writer{b: cell.BeginCell()}
}

// WrapBuilder continues writing into an existing builder.
func WrapBuilder(b *cell.Builder) *Writer {
	return &Writer{b: b}
}

func (w *Writer) Err() error { return w.err }

func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) Failf(base error, format string, args ...interface{}) {
	w.Fail(errors.Wrapf(base, format, args...))
}

func (w *Writer) Builder() *cell.Builder { return w.b }

func (w *Writer) Uint(v uint64, bits uint) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrapf(w.b.StoreUInt(v, bits), "failed to store uint%d", bits))
	}
	return w
}

func (w *Writer) Int(v int64, bits uint) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrapf(w.b.StoreInt(v, bits), "failed to store int%d", bits))
	}
	return w
}

func (w *Writer) BigUint(v *big.Int, bits uint) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrapf(w.b.StoreBigUInt(v, bits), "failed to store uint%d", bits))
	}
	return w
}

func (w *Writer) Bit(v bool) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrap(w.b.StoreBoolBit(v), "failed to store bit"))
	}
	return w
}

func (w *Writer) Bytes(v []byte) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrapf(w.b.StoreSlice(v, uint(len(v))*8), "failed to store %d bytes", len(v)))
	}
	return w
}

// Coins writes a Grams amount. A nil amount is written as zero.
func (w *Writer) Coins(v *big.Int) *Writer {
	if v == nil {
		v = new(big.Int)
	}
	if w.err == nil {
		w.Fail(errors.Wrap(w.b.StoreBigCoins(v), "failed to store coins"))
	}
	return w
}

func (w *Writer) Addr(a *address.Address) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrap(w.b.StoreAddr(a), "failed to store address"))
	}
	return w
}

func (w *Writer) Ref(c *cell.Cell) *Writer {
	if w.err != nil {
		return w
	}
	if c == nil {
		w.Fail(errors.New("nil reference"))
		return w
	}

	w.Fail(errors.Wrap(w.b.StoreRef(c), "failed to store reference"))
	return w
}

func (w *Writer) MaybeRef(c *cell.Cell) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrap(w.b.StoreMaybeRef(c), "failed to store maybe reference"))
	}
	return w
}

// Builder appends the content of another builder.
func (w *Writer) Append(b *cell.Builder) *Writer {
	if w.err == nil {
		w.Fail(errors.Wrap(w.b.StoreBuilder(b), "failed to store builder"))
	}
	return w
}

// EndCell finalizes the written data.
func (w *Writer) EndCell() (*cell.Cell, error) {
	if w.err != nil {
		return nil, w.err
	}

	return w.b.EndCell(), nil
}
