// Package actions defines the wallet action union shared by the v5
// generations and the standard OutList encoding of plain actions.
package actions

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// MaxActions is the largest action list a wallet accepts in one request.
const MaxActions = 255

type SendMode uint8

const (
	SendModeNone                    SendMode = 0
	SendModePayGasSeparately        SendMode = 1
	SendModeIgnoreErrors            SendMode = 2
	SendModeBounceOnActionFail      SendMode = 16
	SendModeDestroyAccountIfZero    SendMode = 32
	SendModeCarryAllRemainingValue  SendMode = 64
	SendModeCarryAllRemainingAmount SendMode = 128
)

func (m SendMode) Has(flag SendMode) bool { return m&flag == flag }

type Kind string

const (
	KindSendMsg               Kind = "send_msg"
	KindSetCode               Kind = "set_code"
	KindSetIsPublicKeyEnabled Kind = "set_is_public_key_enabled"
	KindAddExtension          Kind = "add_extension"
	KindRemoveExtension       Kind = "remove_extension"
)

// Action is one entry of a v5 action list.
type Action interface {
	Kind() Kind
	isAction()
}

type SendMsg struct {
	Mode    SendMode   `json:"mode"`
	Message *cell.Cell `json:"-"`
}

type SetCode struct {
	Code *cell.Cell `json:"-"`
}

type SetIsPublicKeyEnabled struct {
	Enabled bool `json:"enabled"`
}

type AddExtension struct {
	Address *address.Address `json:"address"`
}

type RemoveExtension struct {
	Address *address.Address `json:"address"`
}

func (SendMsg) Kind() Kind               { return KindSendMsg }
func (SetCode) Kind() Kind               { return KindSetCode }
func (SetIsPublicKeyEnabled) Kind() Kind { return KindSetIsPublicKeyEnabled }
func (AddExtension) Kind() Kind          { return KindAddExtension }
func (RemoveExtension) Kind() Kind       { return KindRemoveExtension }

func (SendMsg) isAction()               {}
func (SetCode) isAction()               {}
func (SetIsPublicKeyEnabled) isAction() {}
func (AddExtension) isAction()          {}
func (RemoveExtension) isAction()       {}

// IsExtended reports whether a is a wallet management action rather
// than an out action executed by the TVM.
func IsExtended(a Action) bool {
	switch a.(type) {
	case SetIsPublicKeyEnabled, AddExtension, RemoveExtension:
		return true
	default:
		return false
	}
}

// NewSendMsg serializes an internal message into a transfer action.
func NewSendMsg(mode SendMode, msg *tlb.InternalMessage) (SendMsg, error) {
	if msg == nil {
		return SendMsg{}, errors.New("nil message")
	}

	c, err := tlb.ToCell(msg)
	if err != nil {
		return SendMsg{}, errors.Wrap(err, "failed to serialize internal message")
	}

	return SendMsg{Mode: mode, Message: c}, nil
}

// Internal parses the carried message as an internal message.
func (a SendMsg) Internal() (*tlb.InternalMessage, error) {
	if a.Message == nil {
		return nil, errors.New("nil message")
	}

	var msg tlb.InternalMessage
	if err := tlb.LoadFromCell(&msg, a.Message.BeginParse()); err != nil {
		return nil, errors.Wrap(err, "failed to parse internal message")
	}

	return &msg, nil
}

// CheckCount rejects lists longer than MaxActions.
func CheckCount(n int) error {
	if n > MaxActions {
		return errors.Wrapf(codec.ErrTooManyActions, "%d actions, at most %d allowed", n, MaxActions)
	}

	return nil
}
