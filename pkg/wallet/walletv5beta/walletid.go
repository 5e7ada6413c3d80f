package walletv5beta

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// WalletIDBits is the width of the serialized wallet id.
const WalletIDBits = 80

type Version string

const VersionV5 Version = "v5"

var (
	versionCodes = map[Version]uint8{VersionV5: 0}
	versionNames = map[uint8]Version{0: VersionV5}
)

// WalletID is stored as global_id:int32 wc:int8 version:uint8 subwallet:uint32.
type WalletID struct {
	NetworkGlobalID int32   `json:"network_global_id"`
	Workchain       int8    `json:"workchain"`
	Version         Version `json:"wallet_version"`
	SubwalletNumber uint32  `json:"subwallet_number"`
}

func (id WalletID) store(w *codec.Writer) {
	code, ok := versionCodes[id.Version]
	if !ok {
		w.Failf(codec.ErrUnknownWalletVersion, "%q", string(id.Version))
		return
	}

	w.Int(int64(id.NetworkGlobalID), 32).
		Int(int64(id.Workchain), 8).
		Uint(uint64(code), 8).
		Uint(uint64(id.SubwalletNumber), 32)
}

// Encode returns the 10-byte serialized id.
func (id WalletID) Encode() ([]byte, error) {
	w := codec.NewWriter()
	id.store(w)

	c, err := w.EndCell()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode wallet id")
	}

	raw, err := c.BeginParse().LoadSlice(WalletIDBits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode wallet id")
	}

	return raw, nil
}

func LoadWalletID(s *cell.Slice) (WalletID, error) {
	r := codec.NewReader(s)
	return loadWalletID(r)
}

// DecodeWalletID parses the 10-byte serialized id.
func DecodeWalletID(raw []byte) (WalletID, error) {
	if len(raw) != WalletIDBits/8 {
		return WalletID{}, errors.Wrapf(codec.ErrStructuralExhaustion, "wallet id must be %d bytes, got %d", WalletIDBits/8, len(raw))
	}

	return LoadWalletID(cell.BeginCell().MustStoreSlice(raw, WalletIDBits).EndCell().BeginParse())
}

func loadWalletID(r *codec.Reader) (WalletID, error) {
	id := WalletID{
		NetworkGlobalID: int32(r.Int(32)),
		Workchain:       int8(r.Int(8)),
	}
	code := uint8(r.Uint(8))
	id.SubwalletNumber = uint32(r.Uint(32))
	if err := r.Err(); err != nil {
		return WalletID{}, errors.Wrap(err, "failed to load wallet id")
	}

	version, ok := versionNames[code]
	if !ok {
		return WalletID{}, errors.Wrapf(codec.ErrUnknownWalletVersion, "failed to load wallet id: version code %d", code)
	}
	id.Version = version

	return id, nil
}
