package dict

import "bytes"

// Key describes how a fixed-width hashmap key is turned into a Go value.
type Key[K any] struct {
	bits   uint
	decode func(raw []byte) K
	equal  func(a, b K) bool
}

func (k Key[K]) Bits() uint { return k.bits }

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Uint reads keys as unsigned integers of the given width (at most 64).
func Uint[K unsigned](bits uint) Key[K] {
	return Key[K]{
		bits: bits,
		decode: func(raw []byte) K {
			return K(readUint(raw, bits))
		},
		equal: func(a, b K) bool { return a == b },
	}
}

// Int reads keys as two's complement integers of the given width (at most 64).
func Int[K signed](bits uint) Key[K] {
	return Key[K]{
		bits: bits,
		decode: func(raw []byte) K {
			v := readUint(raw, bits)
			if bits < 64 && v&(1<<(bits-1)) != 0 {
				v |= ^uint64(0) << bits
			}
			return K(int64(v))
		},
		equal: func(a, b K) bool { return a == b },
	}
}

// Bytes keeps keys as raw big-endian buffers. The width must be a
// multiple of 8.
func Bytes(bits uint) Key[[]byte] {
	return Key[[]byte]{
		bits: bits,
		decode: func(raw []byte) []byte {
			return bytes.Clone(raw)
		},
		equal: bytes.Equal,
	}
}

func readUint(raw []byte, bits uint) uint64 {
	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}

	if pad := uint(len(raw))*8 - bits; pad > 0 {
		v >>= pad
	}

	return v
}
