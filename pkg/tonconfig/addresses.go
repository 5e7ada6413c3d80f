package tonconfig

import (
	"encoding/binary"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const masterchain = -1

func masterAddress(hash []byte) *address.Address {
	return address.NewAddress(0, byte(masterchain&0xff), hash)
}

// ParseMasterAddress decodes params 0 through 4: a bits256 account
// hash in the masterchain.
func ParseMasterAddress(id int32, s *cell.Slice) (*address.Address, error) {
	if s == nil {
		return absent[*address.Address](id)
	}

	r := codec.NewReader(s)
	hash := r.Bytes(32)
	if err := r.Err(); err != nil {
		return nil, paramErr(id, err)
	}

	return masterAddress(hash), nil
}

// ParseFundamentalSmcAddresses decodes param 31, a HashmapE 256 True of
// masterchain accounts that pay no fees.
func ParseFundamentalSmcAddresses(s *cell.Slice) ([]*address.Address, error) {
	if s == nil {
		return absent[[]*address.Address](ParamFundamentalSmc)
	}

	d, err := dict.Load(codec.NewReader(s), dict.Bytes(256), dict.None)
	if err != nil {
		return nil, paramErr(ParamFundamentalSmc, err)
	}

	addrs := make([]*address.Address, 0, d.Len())
	for _, hash := range d.Keys() {
		addrs = append(addrs, masterAddress(hash))
	}

	return addrs, nil
}

type SuspendedAddress struct {
	Workchain int32         `json:"workchain"`
	Hash      hexutil.Bytes `json:"hash"`
}

type SuspendedAddresses struct {
	Addresses      []SuspendedAddress `json:"addresses"`
	SuspendedUntil uint32             `json:"suspended_until"`
}

// ParseSuspendedAddresses decodes param 44:
// suspended_address_list#00 addresses:(HashmapE 288 Unit) suspended_until:uint32.
func ParseSuspendedAddresses(s *cell.Slice) (SuspendedAddresses, error) {
	if s == nil {
		return absent[SuspendedAddresses](ParamSuspendedAddresses)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "suspended address list", 0x00)
	if err := r.Err(); err != nil {
		return SuspendedAddresses{}, paramErr(ParamSuspendedAddresses, err)
	}

	d, err := dict.Load(r, dict.Bytes(288), dict.None)
	if err != nil {
		return SuspendedAddresses{}, paramErr(ParamSuspendedAddresses, err)
	}

	until := uint32(r.Uint(32))
	if err = r.Err(); err != nil {
		return SuspendedAddresses{}, paramErr(ParamSuspendedAddresses, err)
	}

	res := SuspendedAddresses{
		Addresses:      make([]SuspendedAddress, 0, d.Len()),
		SuspendedUntil: until,
	}
	for _, key := range d.Keys() {
		res.Addresses = append(res.Addresses, SuspendedAddress{
			Workchain: int32(binary.BigEndian.Uint32(key[:4])),
			Hash:      key[4:],
		})
	}

	return res, nil
}
