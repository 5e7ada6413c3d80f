package http

import (
	"net/http"

	"github.com/Bridgeless-Project/ton-kit/internal/api/ctx"
	"github.com/Bridgeless-Project/ton-kit/internal/api/requests"
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
)

func DecodeActions(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewDecodeActionsRequest(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	list, err := resources.DecodeActions(req.Generation, req.Boc)
	if err != nil {
		if isBadInput(err) {
			ape.RenderErr(w, problems.BadRequest(err)...)
			return
		}
		ctx.Logger(r.Context()).WithError(err).Error("failed to decode actions")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ape.Render(w, resources.Actions{Generation: req.Generation, Actions: list})
}

func DecodeWalletID(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewDecodeWalletIDRequest(r, ctx.NetworkGlobalID(r.Context()))
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	id, err := walletv5r1.DecodeWalletID(*req.WalletID, *req.NetworkGlobalID)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	ape.Render(w, resources.FromWalletID(*req.WalletID, id))
}
