package codec

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// addrStdBits is the size of addr_std without anycast.
const addrStdBits = 2 + 1 + 8 + 256

// Reader is a sequential cursor over a cell slice that remembers
// the first failure. Once failed, every read returns a zero value
// and Err reports the original cause.
type Reader struct {
	s   *cell.Slice
	err error
}

func NewReader(s *cell.Slice) *Reader {
	if s == nil {
		return &Reader{err: errors.Wrap(ErrStructuralExhaustion, "nil slice")}
	}

	return &Reader{s: s}
}

// NewCellReader starts reading c from its first bit.
func NewCellReader(c *cell.Cell) *Reader {
	if c == nil {
		return &Reader{err: errors.Wrap(ErrStructuralExhaustion, "nil cell")}
	}

	return &Reader{s: c.BeginParse()}
}

func (r *Reader) Err() error { return r.err }

// Fail records err unless a failure was already recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) Failf(base error, format string, args ...interface{}) {
	r.Fail(errors.Wrapf(base, format, args...))
}

func (r *Reader) BitsLeft() uint {
	if r.s == nil {
		return 0
	}
	return r.s.BitsLeft()
}

func (r *Reader) RefsLeft() int {
	if r.s == nil {
		return 0
	}
	return r.s.RefsNum()
}

func (r *Reader) needBits(n uint) bool {
	if r.err != nil {
		return false
	}
	if left := r.s.BitsLeft(); left < n {
		r.err = errors.Wrapf(ErrStructuralExhaustion, "need %d bits, %d left", n, left)
		return false
	}

	return true
}

func (r *Reader) needRef() bool {
	if r.err != nil {
		return false
	}
	if r.s.RefsNum() < 1 {
		r.err = errors.Wrap(ErrStructuralExhaustion, "need a reference, none left")
		return false
	}

	return true
}

// Uint reads an unsigned integer of up to 64 bits.
func (r *Reader) Uint(bits uint) uint64 {
	if bits == 0 || !r.needBits(bits) {
		return 0
	}

	v, err := r.s.LoadUInt(bits)
	if err != nil {
		r.Fail(errors.Wrapf(err, "failed to load uint%d", bits))
		return 0
	}

	return v
}

// Int reads a signed integer of up to 64 bits.
func (r *Reader) Int(bits uint) int64 {
	if bits == 0 || !r.needBits(bits) {
		return 0
	}

	v, err := r.s.LoadInt(bits)
	if err != nil {
		r.Fail(errors.Wrapf(err, "failed to load int%d", bits))
		return 0
	}

	return v
}

// BigUint reads an unsigned integer of up to 256 bits.
func (r *Reader) BigUint(bits uint) *big.Int {
	if bits == 0 {
		return new(big.Int)
	}
	if !r.needBits(bits) {
		return nil
	}

	v, err := r.s.LoadBigUInt(bits)
	if err != nil {
		r.Fail(errors.Wrapf(err, "failed to load uint%d", bits))
		return nil
	}

	return v
}

func (r *Reader) Bit() bool {
	if !r.needBits(1) {
		return false
	}

	v, err := r.s.LoadBoolBit()
	if err != nil {
		r.Fail(errors.Wrap(err, "failed to load bit"))
		return false
	}

	return v
}

// Bytes reads n whole bytes.
func (r *Reader) Bytes(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	if !r.needBits(uint(n) * 8) {
		return nil
	}

	v, err := r.s.LoadSlice(uint(n) * 8)
	if err != nil {
		r.Fail(errors.Wrapf(err, "failed to load %d bytes", n))
		return nil
	}

	return v
}

// Bits reads n raw bits, left-aligned in the returned buffer.
func (r *Reader) Bits(n uint) []byte {
	if n == 0 {
		return []byte{}
	}
	if !r.needBits(n) {
		return nil
	}

	v, err := r.s.LoadSlice(n)
	if err != nil {
		r.Fail(errors.Wrapf(err, "failed to load %d bits", n))
		return nil
	}

	return v
}

// VarUint reads a VarUInteger whose byte length is prefixed by lenBits bits.
func (r *Reader) VarUint(lenBits uint) *big.Int {
	ln := r.Uint(lenBits)
	if r.err != nil {
		return nil
	}

	return r.BigUint(uint(ln) * 8)
}

// Coins reads a Grams amount (VarUInteger 16).
func (r *Reader) Coins() *big.Int {
	return r.VarUint(4)
}

// Addr reads a MsgAddress.
func (r *Reader) Addr() *address.Address {
	if !r.needBits(2) {
		return nil
	}

	addr, err := r.s.LoadAddr()
	if err != nil {
		if r.s.BitsLeft() < addrStdBits {
			r.Failf(ErrStructuralExhaustion, "failed to load address: %s", err)
		} else {
			r.Fail(errors.Wrap(err, "failed to load address"))
		}
		return nil
	}

	return addr
}

// Ref descends into the next reference. The returned reader fails
// immediately if r has already failed or has no references left.
func (r *Reader) Ref() *Reader {
	if !r.needRef() {
		return &Reader{err: r.err}
	}

	s, err := r.s.LoadRef()
	if err != nil {
		r.Fail(errors.Wrap(err, "failed to load reference"))
		return &Reader{err: r.err}
	}

	return &Reader{s: s}
}

// RefCell returns the next reference as a cell without parsing it.
func (r *Reader) RefCell() *cell.Cell {
	if !r.needRef() {
		return nil
	}

	c, err := r.s.LoadRefCell()
	if err != nil {
		r.Fail(errors.Wrap(err, "failed to load reference"))
		return nil
	}

	return c
}

// MaybeRefCell reads a presence bit and, when it is set, the referenced cell.
func (r *Reader) MaybeRefCell() (*cell.Cell, bool) {
	if !r.Bit() {
		return nil, false
	}

	c := r.RefCell()
	return c, c != nil
}

// Rest converts everything left in the cursor into a standalone cell
// and leaves the cursor empty.
func (r *Reader) Rest() *cell.Cell {
	if r.err != nil {
		return nil
	}

	c, err := r.s.ToCell()
	if err != nil {
		r.Fail(errors.Wrap(err, "failed to convert slice to cell"))
		return nil
	}

	if left := r.s.BitsLeft(); left > 0 {
		if _, err = r.s.LoadSlice(left); err != nil {
			r.Fail(errors.Wrap(err, "failed to skip bits"))
			return nil
		}
	}
	for r.s.RefsNum() > 0 {
		if _, err = r.s.LoadRefCell(); err != nil {
			r.Fail(errors.Wrap(err, "failed to skip reference"))
			return nil
		}
	}

	return c
}

// ExpectTag reads a bits-wide tag and checks it against the accepted
// values. what names the record being parsed, e.g. "param 12".
func (r *Reader) ExpectTag(bits uint, what string, accepted ...uint64) uint64 {
	tag := r.Uint(bits)
	if r.err != nil {
		return 0
	}

	for _, a := range accepted {
		if tag == a {
			return tag
		}
	}

	r.Failf(ErrTagMismatch, "%s: unexpected tag %s", what, formatTag(tag, bits))
	return 0
}

func formatTag(tag uint64, bits uint) string {
	return fmt.Sprintf("0x%0*x", int((bits+3)/4), tag)
}
