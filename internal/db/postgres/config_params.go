package pg

import (
	"database/sql"

	"github.com/Bridgeless-Project/ton-kit/internal/db"
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	configParamsTable   = "config_params"
	configParamsSeqno   = "seqno"
	configParamsParamId = "param_id"
)

type configParamsQ struct {
	db       *pgdb.DB
	selector squirrel.SelectBuilder
}

func NewConfigParamsQ(db *pgdb.DB) db.ConfigParamsQ {
	return &configParamsQ{
		db:       db.Clone(),
		selector: squirrel.Select("*").From(configParamsTable),
	}
}

func (q *configParamsQ) New() db.ConfigParamsQ {
	return NewConfigParamsQ(q.db.Clone())
}

// Insert stores a whole snapshot in one statement. Parameters already
// stored for the same block are left untouched.
func (q *configParamsQ) Insert(seqno uint32, params []db.ConfigParam) error {
	if len(params) == 0 {
		return nil
	}

	var (
		ids  = make(pq.Int64Array, len(params))
		bocs = make(pq.ByteaArray, len(params))
	)
	for i, param := range params {
		ids[i], bocs[i] = int64(param.ParamId), param.Boc
	}

	const query = `
		INSERT INTO config_params (seqno, param_id, boc)
		SELECT $1, unnested_data.param_id, unnested_data.boc
		FROM (
			SELECT unnest($2::integer[]) AS param_id, unnest($3::bytea[]) AS boc
		) AS unnested_data
		ON CONFLICT (seqno, param_id) DO NOTHING;
`
	return q.db.ExecRaw(query, int64(seqno), ids, bocs)
}

func (q *configParamsQ) Select(selector db.ConfigParamsSelector) ([]db.ConfigParam, error) {
	query := q.selector
	if selector.Seqno != nil {
		query = query.Where(squirrel.Eq{configParamsSeqno: *selector.Seqno})
	}
	if len(selector.ParamIds) > 0 {
		query = query.Where(squirrel.Eq{configParamsParamId: selector.ParamIds})
	}
	query = query.OrderBy(configParamsParamId + " ASC")

	var params []db.ConfigParam
	if err := q.db.Select(&params, query); err != nil {
		return nil, err
	}

	return params, nil
}

func (q *configParamsQ) LatestSeqno() (uint32, error) {
	var seqno sql.NullInt64
	err := q.db.Get(&seqno, squirrel.Select("MAX(" + configParamsSeqno + ")").From(configParamsTable))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	if !seqno.Valid {
		return 0, db.ErrNoSnapshot
	}

	return uint32(seqno.Int64), nil
}

func (q *configParamsQ) Transaction(f func() error) error {
	return q.db.Transaction(f)
}
