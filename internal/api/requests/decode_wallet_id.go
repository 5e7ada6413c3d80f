package requests

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

type DecodeWalletIDRequest struct {
	WalletID *int32 `json:"wallet_id"`
	// NetworkGlobalID defaults to the network the service is connected to.
	NetworkGlobalID *int32 `json:"network_global_id"`
}

func (r DecodeWalletIDRequest) Validate() error {
	return validation.Errors{
		"wallet_id": validation.Validate(r.WalletID, validation.NotNil),
	}.Filter()
}

func NewDecodeWalletIDRequest(r *http.Request, defaultNetwork int32) (*DecodeWalletIDRequest, error) {
	var req DecodeWalletIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(err, "failed to decode request body")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.NetworkGlobalID == nil {
		req.NetworkGlobalID = &defaultNetwork
	}

	return &req, nil
}
