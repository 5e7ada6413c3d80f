package encoding

import (
	"encoding/base64"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

type Type byte

const (
	TypeHex       Type = 0x02
	TypeBase58    Type = 0x03
	TypeBase64    Type = 0x04
	TypeBase64Url Type = 0x05
)

var typeNames = map[string]Type{
	"hex":       TypeHex,
	"base58":    TypeBase58,
	"base64":    TypeBase64,
	"base64url": TypeBase64Url,
}

var ErrUnknownType = errors.New("unknown encoding type")

func ParseType(name string) (Type, error) {
	t, ok := typeNames[strings.ToLower(name)]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownType, "%q", name)
	}

	return t, nil
}

type Encoder interface {
	Encode(raw []byte) string
	Decode(s string) ([]byte, error)
}

func GetEncoder(t Type) Encoder {
	switch t {
	case TypeHex:
		return &Hex{}
	case TypeBase58:
		return &Base58{}
	case TypeBase64:
		return &Base64{}
	case TypeBase64Url:
		return &Base64Url{}
	default:
		return nil
	}
}

type Hex struct{}

func (d *Hex) Encode(raw []byte) string {
	return hexutil.Encode(raw)
}

// Decode accepts input with or without the 0x prefix.
func (d *Hex) Decode(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	return hexutil.Decode(s)
}

type Base58 struct{}

func (d *Base58) Encode(raw []byte) string {
	return base58.Encode(raw)
}

func (d *Base58) Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

type Base64 struct{}

func (d *Base64) Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func (d *Base64) Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

type Base64Url struct{}

func (d *Base64Url) Encode(raw []byte) string {
	return base64.URLEncoding.EncodeToString(raw)
}

func (d *Base64Url) Decode(s string) ([]byte, error) {
	return base64.URLEncoding.DecodeString(s)
}

// EncodeBOC serializes c as a bag of cells in the given encoding.
func EncodeBOC(c *cell.Cell, t Type) (string, error) {
	enc := GetEncoder(t)
	if enc == nil {
		return "", errors.Wrapf(ErrUnknownType, "%d", t)
	}
	if c == nil {
		return "", errors.New("nil cell")
	}

	return enc.Encode(c.ToBOC()), nil
}

// DecodeBOC parses a bag of cells encoded with t.
func DecodeBOC(s string, t Type) (*cell.Cell, error) {
	enc := GetEncoder(t)
	if enc == nil {
		return nil, errors.Wrapf(ErrUnknownType, "%d", t)
	}

	raw, err := enc.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode boc")
	}

	c, err := cell.FromBOC(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse boc")
	}

	return c, nil
}
