package db

import (
	"time"

	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

var ErrNoSnapshot = errors.New("no config snapshot stored")

// ConfigParamsQ stores raw config parameters per masterchain block.
type ConfigParamsQ interface {
	New() ConfigParamsQ
	Insert(seqno uint32, params []ConfigParam) error
	Select(selector ConfigParamsSelector) ([]ConfigParam, error)
	LatestSeqno() (uint32, error)

	Transaction(f func() error) error
}

type ConfigParam struct {
	Id        int64     `structs:"-" db:"id"`
	Seqno     uint32    `structs:"seqno" db:"seqno"`
	ParamId   int32     `structs:"param_id" db:"param_id"`
	Boc       []byte    `structs:"boc" db:"boc"`
	CreatedAt time.Time `structs:"-" db:"created_at"`
}

type ConfigParamsSelector struct {
	Seqno    *uint32
	ParamIds []int32
}

// FromParams serializes every parameter of a decoded config root.
func FromParams(seqno uint32, params tonconfig.Params) []ConfigParam {
	res := make([]ConfigParam, 0, len(params))
	for _, id := range params.IDs() {
		res = append(res, ConfigParam{
			Seqno:   seqno,
			ParamId: id,
			Boc:     params[id].ToBOC(),
		})
	}

	return res
}

// ToParams restores the parameter map of a stored snapshot.
func ToParams(rows []ConfigParam) (tonconfig.Params, error) {
	params := make(tonconfig.Params, len(rows))
	for _, row := range rows {
		c, err := cell.FromBOC(row.Boc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse param %d", row.ParamId)
		}
		params[row.ParamId] = c
	}

	return params, nil
}
