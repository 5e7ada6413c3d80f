// Package watcher keeps the latest blockchain config decoded in memory
// and optionally records every new snapshot in the database.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/Bridgeless-Project/ton-kit/internal/chain/ton"
	"github.com/Bridgeless-Project/ton-kit/internal/db"
	"github.com/Bridgeless-Project/ton-kit/pkg/tonconfig"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/logan/v3"
	"go.uber.org/atomic"
)

var ErrNotReady = errors.New("config is not fetched yet")

type Fetcher interface {
	FetchConfig(ctx context.Context, ids ...int32) (*ton.Snapshot, error)
}

// State is a decoded config snapshot. Full is nil when only a subset of
// parameters is watched or when the snapshot failed to decode as a whole.
type State struct {
	Seqno     uint32
	Params    tonconfig.Params
	Full      *tonconfig.FullConfig
	FullErr   error
	FetchedAt time.Time
}

type Watcher struct {
	fetcher Fetcher
	db      db.ConfigParamsQ
	cfg     Config

	mu    sync.RWMutex
	state *State

	lastSeqno atomic.Uint32
	failures  atomic.Int64
	ready     atomic.Bool

	logger *logan.Entry
}

// New creates a watcher. q may be nil, in which case snapshots are kept
// in memory only.
func New(fetcher Fetcher, q db.ConfigParamsQ, cfg Config, logger *logan.Entry) *Watcher {
	return &Watcher{
		fetcher: fetcher,
		db:      q,
		cfg:     cfg,
		logger:  logger,
	}
}

func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("config watcher started")

	if err := w.restore(); err != nil {
		w.logger.WithError(err).Warn("failed to restore stored config snapshot")
	}

	cooldown := time.Duration(0)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil
		case <-time.After(cooldown):
			cooldown = w.cfg.Interval
			if err := w.Poll(ctx); err != nil {
				w.failures.Inc()
				w.logger.WithError(err).Error("failed to poll blockchain config")
			}
		}
	}
}

// Poll fetches the current config once and replaces the cached state
// when the masterchain block advanced.
func (w *Watcher) Poll(ctx context.Context) error {
	snapshot, err := w.fetcher.FetchConfig(ctx, w.cfg.Params...)
	if err != nil {
		return errors.Wrap(err, "failed to fetch config")
	}

	if w.ready.Load() && snapshot.Seqno <= w.lastSeqno.Load() {
		w.failures.Store(0)
		return nil
	}

	state := w.decode(snapshot.Seqno, snapshot.Params)
	if w.db != nil && w.cfg.Persist {
		if err = w.db.Insert(snapshot.Seqno, db.FromParams(snapshot.Seqno, snapshot.Params)); err != nil {
			return errors.Wrapf(err, "failed to store snapshot %d", snapshot.Seqno)
		}
	}

	w.set(state)
	w.failures.Store(0)

	return nil
}

func (w *Watcher) restore() error {
	if w.db == nil {
		return nil
	}

	seqno, err := w.db.LatestSeqno()
	if errors.Is(err, db.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to get latest seqno")
	}

	rows, err := w.db.Select(db.ConfigParamsSelector{Seqno: &seqno, ParamIds: w.cfg.Params})
	if err != nil {
		return errors.Wrapf(err, "failed to select snapshot %d", seqno)
	}

	params, err := db.ToParams(rows)
	if err != nil {
		return errors.Wrapf(err, "failed to restore snapshot %d", seqno)
	}

	w.set(w.decode(seqno, params))

	return nil
}

func (w *Watcher) decode(seqno uint32, params tonconfig.Params) *State {
	state := &State{Seqno: seqno, Params: params, FetchedAt: time.Now().UTC()}
	if len(w.cfg.Params) > 0 {
		return state
	}

	state.Full, state.FullErr = tonconfig.ParseFull(params)
	if state.FullErr != nil {
		w.logger.WithError(state.FullErr).WithField("seqno", seqno).Warn("config snapshot failed to decode")
	}

	return state
}

func (w *Watcher) set(state *State) {
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()

	w.lastSeqno.Store(state.Seqno)
	w.ready.Store(true)

	w.logger.WithFields(logan.F{
		"seqno":  state.Seqno,
		"params": len(state.Params),
	}).Info("config snapshot updated")
}

// Current returns the latest snapshot.
func (w *Watcher) Current() (*State, error) {
	if !w.ready.Load() {
		return nil, ErrNotReady
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.state, nil
}

// Param decodes a single parameter of the latest snapshot.
func (w *Watcher) Param(id int32) (interface{}, error) {
	state, err := w.Current()
	if err != nil {
		return nil, err
	}

	return tonconfig.ParseParam(id, state.Params.Slice(id))
}

// HealthCheck fails until the first snapshot is loaded and after three
// consecutive failed polls.
func (w *Watcher) HealthCheck(context.Context) error {
	if !w.ready.Load() {
		return ErrNotReady
	}
	if n := w.failures.Load(); n >= 3 {
		return errors.Errorf("%d consecutive polls failed", n)
	}

	return nil
}
