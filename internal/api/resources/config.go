package resources

import (
	"time"

	"github.com/Bridgeless-Project/ton-kit/internal/watcher"
	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
)

type Config struct {
	Seqno     uint32                `json:"seqno"`
	FetchedAt *time.Time            `json:"fetched_at,omitempty"`
	Params    []int32               `json:"params"`
	Config    *tonconfig.FullConfig `json:"config,omitempty"`
	Error     string                `json:"error,omitempty"`
}

func FromState(state *watcher.State) Config {
	res := Config{
		Seqno:  state.Seqno,
		Params: state.Params.IDs(),
		Config: state.Full,
	}
	if !state.FetchedAt.IsZero() {
		res.FetchedAt = &state.FetchedAt
	}
	if state.FullErr != nil {
		res.Error = state.FullErr.Error()
	}

	return res
}

type Param struct {
	ID    int32       `json:"id"`
	Seqno uint32      `json:"seqno"`
	Value interface{} `json:"value"`
	Boc   string      `json:"boc,omitempty"`
}
