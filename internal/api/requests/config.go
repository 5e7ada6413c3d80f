package requests

import (
	"net/http"
	"strconv"

	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

const querySeqno = "seqno"

type GetConfigRequest struct {
	// Seqno selects a stored snapshot instead of the live one.
	Seqno *uint32
}

func NewGetConfigRequest(r *http.Request) (*GetConfigRequest, error) {
	raw := r.URL.Query().Get(querySeqno)
	if raw == "" {
		return &GetConfigRequest{}, nil
	}

	seqno, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, validation.Errors{querySeqno: errors.Wrap(err, "must be a block seqno")}
	}
	v := uint32(seqno)

	return &GetConfigRequest{Seqno: &v}, nil
}

type GetParamRequest struct {
	GetConfigRequest
	ID int32
}

func NewGetParamRequest(r *http.Request) (*GetParamRequest, error) {
	base, err := NewGetConfigRequest(r)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(chi.URLParam(r, ParamParam), 10, 32)
	if err != nil {
		return nil, validation.Errors{ParamParam: errors.Wrap(err, "must be a param id")}
	}
	if _, ok := tonconfig.PolicyFor(int32(id)); !ok {
		return nil, validation.Errors{ParamParam: errors.Wrapf(tonconfig.ErrUnknownParam, "%d", id)}
	}

	return &GetParamRequest{GetConfigRequest: *base, ID: int32(id)}, nil
}
