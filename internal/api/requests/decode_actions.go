package requests

import (
	"encoding/json"
	"net/http"

	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	ParamGeneration = "generation"
	ParamParam      = "param"

	defaultEncoding = "hex"
)

type DecodeActionsRequest struct {
	Generation resources.Generation
	Boc        *cell.Cell
}

type decodeActionsBody struct {
	Boc      string `json:"boc"`
	Encoding string `json:"encoding"`
}

func (b decodeActionsBody) Validate() error {
	return validation.Errors{
		"boc": validation.Validate(b.Boc, validation.Required),
		"encoding": validation.Validate(b.Encoding,
			validation.In("hex", "base58", "base64", "base64url")),
	}.Filter()
}

func NewDecodeActionsRequest(r *http.Request) (*DecodeActionsRequest, error) {
	gen, err := resources.ParseGeneration(chi.URLParam(r, ParamGeneration))
	if err != nil {
		return nil, validation.Errors{ParamGeneration: err}
	}

	var body decodeActionsBody
	if err = json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode request body")
	}
	if body.Encoding == "" {
		body.Encoding = defaultEncoding
	}
	if err = body.Validate(); err != nil {
		return nil, err
	}

	t, err := encoding.ParseType(body.Encoding)
	if err != nil {
		return nil, validation.Errors{"encoding": err}
	}

	c, err := encoding.DecodeBOC(body.Boc, t)
	if err != nil {
		return nil, validation.Errors{"boc": err}
	}

	return &DecodeActionsRequest{Generation: gen, Boc: c}, nil
}
