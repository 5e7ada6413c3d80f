package actions

import (
	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// MaxBatchMessages is bounded by the references of a single cell.
const MaxBatchMessages = 4

// Batch is the flat transfer list of wallets before v5: every message
// is stored as mode:uint8 ^message and shares the same send mode.
type Batch struct {
	Mode     SendMode     `json:"mode"`
	Messages []*cell.Cell `json:"-"`
}

// StoreBatch appends the (mode, message) pairs to w.
func StoreBatch(w *codec.Writer, b Batch, maxMessages int) error {
	if len(b.Messages) > maxMessages {
		return errors.Wrapf(codec.ErrTooManyActions, "%d messages, at most %d fit into one request", len(b.Messages), maxMessages)
	}
	// The mode is only serialized next to a message.
	if len(b.Messages) == 0 && b.Mode != SendModeNone {
		return errors.Wrapf(codec.ErrRangeViolation, "send mode %d without messages", b.Mode)
	}

	for i, m := range b.Messages {
		if err := CheckMessage(m); err != nil {
			return errors.Wrapf(err, "message %d", i)
		}
		w.Uint(uint64(b.Mode), 8).Ref(m)
	}

	return errors.Wrap(w.Err(), "failed to store transfer batch")
}

// LoadBatch consumes every remaining reference of r as a message. A mode
// byte left without a reference and disagreeing modes are rejected.
func LoadBatch(r *codec.Reader, maxMessages int) (Batch, error) {
	var (
		res     Batch
		modeSet bool
	)

	for r.RefsLeft() > 0 {
		if len(res.Messages) == maxMessages {
			return Batch{}, errors.Wrapf(codec.ErrTooManyActions, "more than %d messages", maxMessages)
		}
		if r.BitsLeft() < 8 {
			return Batch{}, errors.Wrapf(codec.ErrStructuralExhaustion, "message %d: no send mode", len(res.Messages))
		}

		mode := SendMode(r.Uint(8))
		msg := r.RefCell()
		if err := r.Err(); err != nil {
			return Batch{}, errors.Wrapf(err, "message %d", len(res.Messages))
		}
		if err := CheckMessage(msg); err != nil {
			return Batch{}, errors.Wrapf(err, "message %d", len(res.Messages))
		}

		if modeSet && mode != res.Mode {
			return Batch{}, errors.Wrapf(codec.ErrMixedModeBatch, "message %d: mode %d, batch uses %d", len(res.Messages), mode, res.Mode)
		}
		res.Mode, modeSet = mode, true
		res.Messages = append(res.Messages, msg)
	}

	if r.BitsLeft() >= 8 {
		return Batch{}, errors.Wrapf(codec.ErrStructuralExhaustion, "message %d: send mode without a message reference", len(res.Messages))
	}

	return res, nil
}

// EncodeBatch builds a cell holding only the (mode, message) pairs.
func EncodeBatch(b Batch, maxMessages int) (*cell.Cell, error) {
	w := codec.NewWriter()
	if err := StoreBatch(w, b, maxMessages); err != nil {
		return nil, err
	}

	return w.EndCell()
}

// DecodeBatch reads a cell built by EncodeBatch.
func DecodeBatch(c *cell.Cell, maxMessages int) (Batch, error) {
	r := codec.NewCellReader(c)
	if err := r.Err(); err != nil {
		return Batch{}, err
	}

	return LoadBatch(r, maxMessages)
}
