package tonconfig

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	tagBlockLimits   = 0x5d
	tagBlockLimitsV2 = 0x5e
	tagParamLimits   = 0xc3
	tagMsgQueue      = 0xd3
)

type ParamLimits struct {
	Underload uint32 `json:"underload"`
	SoftLimit uint32 `json:"soft_limit"`
	HardLimit uint32 `json:"hard_limit"`
}

// NewParamLimits checks underload <= soft <= hard, in that order.
func NewParamLimits(underload, soft, hard uint32) (ParamLimits, error) {
	if underload > soft {
		return ParamLimits{}, errors.Wrapf(codec.ErrRangeViolation, "underload %d above soft limit %d", underload, soft)
	}
	if soft > hard {
		return ParamLimits{}, errors.Wrapf(codec.ErrRangeViolation, "soft limit %d above hard limit %d", soft, hard)
	}

	return ParamLimits{Underload: underload, SoftLimit: soft, HardLimit: hard}, nil
}

type ImportedMsgQueueLimits struct {
	MaxBytes uint32 `json:"max_bytes"`
	MaxMsgs  uint32 `json:"max_msgs"`
}

type BlockLimits struct {
	Bytes            ParamLimits             `json:"bytes"`
	Gas              ParamLimits             `json:"gas"`
	LtDelta          ParamLimits             `json:"lt_delta"`
	CollatedData     *ParamLimits            `json:"collated_data,omitempty"`
	ImportedMsgQueue *ImportedMsgQueueLimits `json:"imported_msg_queue,omitempty"`
}

// ParseBlockLimits decodes params 22 and 23. block_limits_v2#5e adds
// collated data limits and imported message queue limits.
func ParseBlockLimits(id int32, s *cell.Slice) (BlockLimits, error) {
	if s == nil {
		return absent[BlockLimits](id)
	}

	r := codec.NewReader(s)
	tag := r.ExpectTag(8, "block limits", tagBlockLimits, tagBlockLimitsV2)

	var (
		res BlockLimits
		err error
	)
	if res.Bytes, err = loadParamLimits(r); err != nil {
		return BlockLimits{}, paramErr(id, errors.Wrap(err, "bytes"))
	}
	if res.Gas, err = loadParamLimits(r); err != nil {
		return BlockLimits{}, paramErr(id, errors.Wrap(err, "gas"))
	}
	if res.LtDelta, err = loadParamLimits(r); err != nil {
		return BlockLimits{}, paramErr(id, errors.Wrap(err, "lt delta"))
	}

	if tag == tagBlockLimitsV2 {
		collated, err := loadParamLimits(r)
		if err != nil {
			return BlockLimits{}, paramErr(id, errors.Wrap(err, "collated data"))
		}
		res.CollatedData = &collated

		r.ExpectTag(8, "imported msg queue limits", tagMsgQueue)
		res.ImportedMsgQueue = &ImportedMsgQueueLimits{
			MaxBytes: uint32(r.Uint(32)),
			MaxMsgs:  uint32(r.Uint(32)),
		}
	}

	if err = r.Err(); err != nil {
		return BlockLimits{}, paramErr(id, err)
	}

	return res, nil
}

func loadParamLimits(r *codec.Reader) (ParamLimits, error) {
	r.ExpectTag(8, "param limits", tagParamLimits)
	underload := uint32(r.Uint(32))
	soft := uint32(r.Uint(32))
	hard := uint32(r.Uint(32))
	if err := r.Err(); err != nil {
		return ParamLimits{}, err
	}

	return NewParamLimits(underload, soft, hard)
}
