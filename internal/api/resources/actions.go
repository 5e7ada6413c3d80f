// Package resources renders decoded codec values into API and CLI
// friendly JSON structures.
package resources

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv1"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv4"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5beta"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

type Generation string

const (
	GenerationV1     Generation = "v1"
	GenerationV2     Generation = "v2"
	GenerationV3     Generation = "v3"
	GenerationV4     Generation = "v4"
	GenerationV5Beta Generation = "v5beta"
	GenerationV5R1   Generation = "v5r1"
)

func ParseGeneration(s string) (Generation, error) {
	switch g := Generation(s); g {
	case GenerationV1, GenerationV2, GenerationV3, GenerationV4, GenerationV5Beta, GenerationV5R1:
		return g, nil
	default:
		return "", errors.Wrapf(codec.ErrUnknownWalletVersion, "%q", s)
	}
}

// Action is a flat view of any wallet action. Cells are rendered as hex BOCs.
type Action struct {
	Type          actions.Kind `json:"type"`
	Mode          *uint8       `json:"mode,omitempty"`
	Messages      []string     `json:"messages,omitempty"`
	Code          string       `json:"code,omitempty"`
	Enabled       *bool        `json:"enabled,omitempty"`
	Address       string       `json:"address,omitempty"`
	Workchain     *int8        `json:"workchain,omitempty"`
	StateInit     string       `json:"state_init,omitempty"`
	Body          string       `json:"body,omitempty"`
	ForwardAmount string       `json:"forward_amount,omitempty"`
	QueryID       *uint64      `json:"query_id,omitempty"`
}

type Actions struct {
	Generation Generation `json:"generation"`
	Actions    []Action   `json:"actions"`
}

// DecodeActions decodes the action payload of the given wallet generation.
// Up to v4 the payload is a single transfer batch or action and the result
// has one element.
func DecodeActions(gen Generation, c *cell.Cell) ([]Action, error) {
	switch gen {
	case GenerationV1, GenerationV2, GenerationV3:
		batch, err := actions.DecodeBatch(c, maxBatchMessages(gen))
		if err != nil {
			return nil, err
		}
		return []Action{FromBatch(batch)}, nil
	case GenerationV4:
		a, err := walletv4.DecodeAction(c)
		if err != nil {
			return nil, err
		}
		res, err := FromV4Action(a)
		if err != nil {
			return nil, err
		}
		return []Action{res}, nil
	case GenerationV5Beta:
		list, err := walletv5beta.DecodeActions(c)
		if err != nil {
			return nil, err
		}
		return FromActions(list), nil
	case GenerationV5R1:
		list, err := walletv5r1.DecodeActions(c)
		if err != nil {
			return nil, err
		}
		return FromActions(list), nil
	default:
		return nil, errors.Wrapf(codec.ErrUnknownWalletVersion, "%q", string(gen))
	}
}

func FromActions(list []actions.Action) []Action {
	res := make([]Action, 0, len(list))
	for _, a := range list {
		res = append(res, FromAction(a))
	}

	return res
}

func FromAction(a actions.Action) Action {
	res := Action{Type: a.Kind()}

	switch v := a.(type) {
	case actions.SendMsg:
		res.Mode = ptr(uint8(v.Mode))
		res.Messages = []string{Boc(v.Message)}
	case actions.SetCode:
		res.Code = Boc(v.Code)
	case actions.SetIsPublicKeyEnabled:
		res.Enabled = ptr(v.Enabled)
	case actions.AddExtension:
		res.Address = v.Address.String()
	case actions.RemoveExtension:
		res.Address = v.Address.String()
	}

	return res
}

func FromV4Action(a walletv4.Action) (Action, error) {
	res := Action{Type: a.Kind()}

	switch v := a.(type) {
	case walletv4.TransferBatch:
		return FromBatch(actions.Batch(v)), nil
	case walletv4.AddAndDeployPlugin:
		stateInit, err := tlb.ToCell(v.StateInit)
		if err != nil {
			return Action{}, errors.Wrap(err, "failed to serialize state init")
		}
		res.Workchain = ptr(v.Workchain)
		res.StateInit = Boc(stateInit)
		res.Body = Boc(v.Body)
		res.ForwardAmount = v.ForwardAmount.String()
	case walletv4.AddPlugin:
		res.Address = v.Address.String()
		res.ForwardAmount = v.ForwardAmount.String()
		res.QueryID = ptr(v.QueryID)
	case walletv4.RemovePlugin:
		res.Address = v.Address.String()
		res.ForwardAmount = v.ForwardAmount.String()
		res.QueryID = ptr(v.QueryID)
	}

	return res, nil
}

// FromBatch renders a flat transfer batch as a single send_msg entry.
func FromBatch(b actions.Batch) Action {
	res := Action{Type: actions.KindSendMsg, Mode: ptr(uint8(b.Mode))}
	res.Messages = make([]string, 0, len(b.Messages))
	for _, m := range b.Messages {
		res.Messages = append(res.Messages, Boc(m))
	}

	return res
}

func maxBatchMessages(gen Generation) int {
	if gen == GenerationV1 {
		return walletv1.MaxMessages
	}

	return actions.MaxBatchMessages
}

// Boc renders a cell as a hex bag of cells.
func Boc(c *cell.Cell) string {
	if c == nil {
		return ""
	}

	return encoding.GetEncoder(encoding.TypeHex).Encode(c.ToBOC())
}

func ptr[T any](v T) *T { return &v }
