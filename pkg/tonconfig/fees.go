package tonconfig

import (
	"math/big"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

type ComplaintPricing struct {
	Deposit   *big.Int `json:"deposit"`
	BitPrice  *big.Int `json:"bit_price"`
	CellPrice *big.Int `json:"cell_price"`
}

// ParseComplaintPricing decodes param 13:
// complaint_prices#1a deposit:Grams bit_price:Grams cell_price:Grams.
func ParseComplaintPricing(s *cell.Slice) (ComplaintPricing, error) {
	if s == nil {
		return absent[ComplaintPricing](ParamComplaintPricing)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "complaint pricing", 0x1a)
	res := ComplaintPricing{
		Deposit:   r.Coins(),
		BitPrice:  r.Coins(),
		CellPrice: r.Coins(),
	}
	if err := r.Err(); err != nil {
		return ComplaintPricing{}, paramErr(ParamComplaintPricing, err)
	}

	return res, nil
}

type BlockCreateFees struct {
	MasterchainBlockFee *big.Int `json:"masterchain_block_fee"`
	BasechainBlockFee   *big.Int `json:"basechain_block_fee"`
}

// ParseBlockCreateFees decodes param 14:
// block_grams_created#6b masterchain_block_fee:Grams basechain_block_fee:Grams.
func ParseBlockCreateFees(s *cell.Slice) (BlockCreateFees, error) {
	if s == nil {
		return absent[BlockCreateFees](ParamBlockCreateFees)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "block create fees", 0x6b)
	res := BlockCreateFees{
		MasterchainBlockFee: r.Coins(),
		BasechainBlockFee:   r.Coins(),
	}
	if err := r.Err(); err != nil {
		return BlockCreateFees{}, paramErr(ParamBlockCreateFees, err)
	}

	return res, nil
}

type StoragePrices struct {
	UtimeSince    uint32 `json:"utime_since"`
	BitPricePS    uint64 `json:"bit_price_ps"`
	CellPricePS   uint64 `json:"cell_price_ps"`
	McBitPricePS  uint64 `json:"mc_bit_price_ps"`
	McCellPricePS uint64 `json:"mc_cell_price_ps"`
}

// ParseStoragePrices decodes param 18, a Hashmap 32 StoragePrices. The
// result is ordered by the key, which is the activation time.
func ParseStoragePrices(s *cell.Slice) ([]StoragePrices, error) {
	if s == nil {
		return absent[[]StoragePrices](ParamStoragePrices)
	}

	d, err := dict.LoadDirect(codec.NewReader(s), dict.Uint[uint32](32), func(r *codec.Reader) (StoragePrices, error) {
		r.ExpectTag(8, "storage prices", 0xcc)
		v := StoragePrices{
			UtimeSince:    uint32(r.Uint(32)),
			BitPricePS:    r.Uint(64),
			CellPricePS:   r.Uint(64),
			McBitPricePS:  r.Uint(64),
			McCellPricePS: r.Uint(64),
		}
		return v, r.Err()
	})
	if err != nil {
		return nil, paramErr(ParamStoragePrices, err)
	}

	return d.Values(), nil
}

const (
	tagGasFlat      = 0xd1
	tagGasPrices    = 0xdd
	tagGasPricesExt = 0xde
)

type FlatGas struct {
	FlatGasLimit uint64 `json:"flat_gas_limit"`
	FlatGasPrice uint64 `json:"flat_gas_price"`
}

type GasLimitsPrices struct {
	Flat            *FlatGas `json:"flat,omitempty"`
	GasPrice        uint64   `json:"gas_price"`
	GasLimit        uint64   `json:"gas_limit"`
	SpecialGasLimit *uint64  `json:"special_gas_limit,omitempty"`
	GasCredit       uint64   `json:"gas_credit"`
	BlockGasLimit   uint64   `json:"block_gas_limit"`
	FreezeDueLimit  uint64   `json:"freeze_due_limit"`
	DeleteDueLimit  uint64   `json:"delete_due_limit"`
}

// ParseGasLimitsPrices decodes params 20 and 21. The flat prefix
// gas_flat_pfx#d1 is optional and wraps either gas_prices#dd or
// gas_prices_ext#de.
func ParseGasLimitsPrices(id int32, s *cell.Slice) (GasLimitsPrices, error) {
	if s == nil {
		return absent[GasLimitsPrices](id)
	}

	r := codec.NewReader(s)

	var res GasLimitsPrices
	tag := r.ExpectTag(8, "gas limits and prices", tagGasFlat, tagGasPrices, tagGasPricesExt)
	if tag == tagGasFlat {
		res.Flat = &FlatGas{
			FlatGasLimit: r.Uint(64),
			FlatGasPrice: r.Uint(64),
		}
		tag = r.ExpectTag(8, "gas limits and prices", tagGasPrices, tagGasPricesExt)
	}

	res.GasPrice = r.Uint(64)
	res.GasLimit = r.Uint(64)
	if tag == tagGasPricesExt {
		special := r.Uint(64)
		res.SpecialGasLimit = &special
	}
	res.GasCredit = r.Uint(64)
	res.BlockGasLimit = r.Uint(64)
	res.FreezeDueLimit = r.Uint(64)
	res.DeleteDueLimit = r.Uint(64)

	if err := r.Err(); err != nil {
		return GasLimitsPrices{}, paramErr(id, err)
	}

	return res, nil
}

type MsgForwardPrices struct {
	LumpPrice      uint64 `json:"lump_price"`
	BitPrice       uint64 `json:"bit_price"`
	CellPrice      uint64 `json:"cell_price"`
	IhrPriceFactor uint32 `json:"ihr_price_factor"`
	FirstFrac      uint16 `json:"first_frac"`
	NextFrac       uint16 `json:"next_frac"`
}

// ParseMsgForwardPrices decodes params 24 and 25:
// msg_forward_prices#ea lump_price:uint64 bit_price:uint64 cell_price:uint64
// ihr_price_factor:uint32 first_frac:uint16 next_frac:uint16.
func ParseMsgForwardPrices(id int32, s *cell.Slice) (MsgForwardPrices, error) {
	if s == nil {
		return absent[MsgForwardPrices](id)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "msg forward prices", 0xea)
	res := MsgForwardPrices{
		LumpPrice:      r.Uint(64),
		BitPrice:       r.Uint(64),
		CellPrice:      r.Uint(64),
		IhrPriceFactor: uint32(r.Uint(32)),
		FirstFrac:      uint16(r.Uint(16)),
		NextFrac:       uint16(r.Uint(16)),
	}
	if err := r.Err(); err != nil {
		return MsgForwardPrices{}, paramErr(id, err)
	}

	return res, nil
}

type PrecompiledContract struct {
	CodeHash hexutil.Bytes `json:"code_hash"`
	GasUsage uint64        `json:"gas_usage"`
}

// ParsePrecompiledContracts decodes param 45:
// precompiled_contracts_config#c0 list:(HashmapE 256 PrecompiledSmc).
func ParsePrecompiledContracts(s *cell.Slice) ([]PrecompiledContract, error) {
	if s == nil {
		return absent[[]PrecompiledContract](ParamPrecompiledContracts)
	}

	r := codec.NewReader(s)
	r.ExpectTag(8, "precompiled contracts", 0xc0)
	if err := r.Err(); err != nil {
		return nil, paramErr(ParamPrecompiledContracts, err)
	}

	d, err := dict.Load(r, dict.Bytes(256), func(r *codec.Reader) (uint64, error) {
		r.ExpectTag(8, "precompiled contract", 0xb0)
		v := r.Uint(64)
		return v, r.Err()
	})
	if err != nil {
		return nil, paramErr(ParamPrecompiledContracts, err)
	}

	res := make([]PrecompiledContract, 0, d.Len())
	for _, e := range d.Entries() {
		res = append(res, PrecompiledContract{CodeHash: e.Key, GasUsage: e.Value})
	}

	return res, nil
}
