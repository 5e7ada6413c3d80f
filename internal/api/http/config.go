package http

import (
	"net/http"

	"github.com/Bridgeless-Project/ton-kit/internal/api/ctx"
	"github.com/Bridgeless-Project/ton-kit/internal/api/requests"
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/internal/db"
	"github.com/Bridgeless-Project/ton-kit/internal/watcher"
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
)

func GetConfig(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewGetConfigRequest(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	state, ok := loadState(w, r, req.Seqno)
	if !ok {
		return
	}

	ape.Render(w, resources.FromState(state))
}

func GetParam(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewGetParamRequest(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	state, ok := loadState(w, r, req.Seqno)
	if !ok {
		return
	}

	value, err := tonconfig.ParseParam(req.ID, state.Params.Slice(req.ID))
	switch {
	case errors.Is(err, codec.ErrMissingParameter):
		ape.RenderErr(w, problems.NotFound())
		return
	case err != nil:
		ctx.Logger(r.Context()).WithError(err).WithField("param", req.ID).Error("failed to decode config param")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ape.Render(w, resources.Param{
		ID:    req.ID,
		Seqno: state.Seqno,
		Value: value,
		Boc:   resources.Boc(state.Params[req.ID]),
	})
}

// loadState resolves the live snapshot or, with seqno set, a stored one.
// It renders the error itself and reports whether the caller may continue.
func loadState(w http.ResponseWriter, r *http.Request, seqno *uint32) (*watcher.State, bool) {
	logger := ctx.Logger(r.Context())

	if seqno == nil {
		state, err := ctx.Config(r.Context()).Current()
		if err != nil {
			ape.RenderErr(w, serviceUnavailable(err))
			return nil, false
		}
		return state, true
	}

	q := ctx.DB(r.Context())
	if q == nil {
		ape.RenderErr(w, problems.NotFound())
		return nil, false
	}

	rows, err := q.Select(db.ConfigParamsSelector{Seqno: seqno})
	if err != nil {
		logger.WithError(err).Error("failed to select config snapshot")
		ape.RenderErr(w, problems.InternalError())
		return nil, false
	}
	if len(rows) == 0 {
		ape.RenderErr(w, problems.NotFound())
		return nil, false
	}

	params, err := db.ToParams(rows)
	if err != nil {
		logger.WithError(err).Error("failed to restore config snapshot")
		ape.RenderErr(w, problems.InternalError())
		return nil, false
	}

	state := &watcher.State{Seqno: *seqno, Params: params}
	state.Full, state.FullErr = tonconfig.ParseFull(params)

	return state, true
}
