package tonconfig

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/dict"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	tagWorkchain     = 0xa6
	tagWorkchainV2   = 0xa7
	maxSplitDepth    = 63
	workchainFormat1 = 1
)

type WorkchainFormat struct {
	VMVersion int32  `json:"vm_version"`
	VMMode    uint64 `json:"vm_mode"`
}

type SplitMergeTimings struct {
	SplitMergeDelay       uint32 `json:"split_merge_delay"`
	SplitMergeInterval    uint32 `json:"split_merge_interval"`
	MinSplitMergeInterval uint32 `json:"min_split_merge_interval"`
	MaxSplitMergeDelay    uint32 `json:"max_split_merge_delay"`
}

// WorkchainExtension is only present in workchain_v2 descriptors.
type WorkchainExtension struct {
	SplitMergeTimings         SplitMergeTimings `json:"split_merge_timings"`
	PersistentStateSplitDepth uint8             `json:"persistent_state_split_depth"`
}

type WorkchainDescriptor struct {
	EnabledSince      uint32              `json:"enabled_since"`
	MonitorMinSplit   uint8               `json:"monitor_min_split"`
	MinSplit          uint8               `json:"min_split"`
	MaxSplit          uint8               `json:"max_split"`
	Basic             bool                `json:"basic"`
	Active            bool                `json:"active"`
	AcceptMsgs        bool                `json:"accept_msgs"`
	Flags             uint16              `json:"flags"`
	ZerostateRootHash hexutil.Bytes       `json:"zerostate_root_hash"`
	ZerostateFileHash hexutil.Bytes       `json:"zerostate_file_hash"`
	Version           uint32              `json:"version"`
	Format            WorkchainFormat     `json:"format"`
	Extension         *WorkchainExtension `json:"extension,omitempty"`
}

// ParseWorkchains decodes param 12, a HashmapE 32 WorkchainDescr keyed
// by workchain id. At least one workchain must be described.
func ParseWorkchains(s *cell.Slice) (dict.Dict[int32, WorkchainDescriptor], error) {
	if s == nil {
		return absent[dict.Dict[int32, WorkchainDescriptor]](ParamWorkchains)
	}

	d, err := dict.Load(codec.NewReader(s), dict.Int[int32](32), loadWorkchainDescriptor)
	if err != nil {
		return dict.Dict[int32, WorkchainDescriptor]{}, paramErr(ParamWorkchains, err)
	}
	if d.IsEmpty() {
		return dict.Dict[int32, WorkchainDescriptor]{},
			paramErr(ParamWorkchains, errors.Wrap(codec.ErrRangeViolation, "no workchains described"))
	}

	return d, nil
}

func loadWorkchainDescriptor(r *codec.Reader) (WorkchainDescriptor, error) {
	tag := r.ExpectTag(8, "workchain descriptor", tagWorkchain, tagWorkchainV2)

	res := WorkchainDescriptor{
		EnabledSince:    uint32(r.Uint(32)),
		MonitorMinSplit: uint8(r.Uint(8)),
		MinSplit:        uint8(r.Uint(8)),
		MaxSplit:        uint8(r.Uint(8)),
		Basic:           r.Bit(),
		Active:          r.Bit(),
		AcceptMsgs:      r.Bit(),
		Flags:           uint16(r.Uint(13)),
	}
	res.ZerostateRootHash = r.Bytes(32)
	res.ZerostateFileHash = r.Bytes(32)
	res.Version = uint32(r.Uint(32))

	if format := r.Uint(4); r.Err() == nil && format != workchainFormat1 {
		r.Failf(codec.ErrTagMismatch, "workchain format: unexpected tag 0x%x", format)
	}
	res.Format = WorkchainFormat{
		VMVersion: int32(r.Int(32)),
		VMMode:    r.Uint(64),
	}

	if r.Err() == nil && res.MonitorMinSplit > res.MinSplit {
		r.Failf(codec.ErrRangeViolation, "monitor_min_split %d above min_split %d", res.MonitorMinSplit, res.MinSplit)
	}

	if tag == tagWorkchainV2 {
		r.ExpectTag(4, "split merge timings", 0x0)
		ext := &WorkchainExtension{
			SplitMergeTimings: SplitMergeTimings{
				SplitMergeDelay:       uint32(r.Uint(32)),
				SplitMergeInterval:    uint32(r.Uint(32)),
				MinSplitMergeInterval: uint32(r.Uint(32)),
				MaxSplitMergeDelay:    uint32(r.Uint(32)),
			},
			PersistentStateSplitDepth: uint8(r.Uint(8)),
		}
		if r.Err() == nil && ext.PersistentStateSplitDepth > maxSplitDepth {
			r.Failf(codec.ErrRangeViolation, "persistent state split depth %d above %d",
				ext.PersistentStateSplitDepth, maxSplitDepth)
		}
		res.Extension = ext
	}

	if err := r.Err(); err != nil {
		return WorkchainDescriptor{}, err
	}

	return res, nil
}
