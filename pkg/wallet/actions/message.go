package actions

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// CheckMessage verifies that c holds a relaxed message, which is either an
// internal message or an outbound external one.
func CheckMessage(c *cell.Cell) error {
	if c == nil {
		return errors.Wrap(codec.ErrStructuralExhaustion, "message is not set")
	}

	var msg tlb.Message
	if err := tlb.LoadFromCell(&msg, c.BeginParse()); err != nil {
		return errors.Wrapf(codec.ErrStructuralExhaustion, "failed to parse message: %s", err)
	}
	if msg.MsgType == tlb.MsgTypeExternalIn {
		return errors.Wrap(codec.ErrTagMismatch, "inbound external message can not be sent by a wallet")
	}

	return nil
}
