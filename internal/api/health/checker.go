package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const checkTimeout = 5 * time.Second

type Checkable interface {
	HealthCheck(ctx context.Context) error
}

type Status struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type Response struct {
	Ok bool `json:"ok"`
	// Map of component name to its status
	Statuses map[string]Status `json:"statuses"`
}

type Map struct {
	statuses  map[string]Status
	overallOk bool
	mu        *sync.Mutex
}

func NewMap() *Map {
	return &Map{
		statuses:  make(map[string]Status),
		overallOk: true,
		mu:        &sync.Mutex{},
	}
}

func (s *Map) Set(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.statuses[name] = Status{Ok: true}
		return
	}

	s.statuses[name] = Status{Ok: false, Error: err.Error()}
	s.overallOk = false
}

func (s *Map) Collect() Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]Status, len(s.statuses))
	for k, v := range s.statuses {
		copied[k] = v
	}

	return Response{
		Ok:       s.overallOk,
		Statuses: copied,
	}
}

// Checker runs all component checks concurrently. Simultaneous callers
// share one run.
type Checker struct {
	components map[string]Checkable
	rg         *singleflight.Group
}

func NewChecker(components map[string]Checkable) *Checker {
	return &Checker{
		components: components,
		rg:         &singleflight.Group{},
	}
}

func (h *Checker) Check(ctx context.Context) Response {
	response, _, _ := h.rg.Do("health_check", func() (interface{}, error) {
		return h.check(ctx), nil
	})

	return response.(Response)
}

func (h *Checker) check(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), checkTimeout)
	defer cancel()

	var (
		wg          sync.WaitGroup
		statusesMap = NewMap()
	)

	wg.Add(len(h.components))
	for name, component := range h.components {
		go func() {
			defer wg.Done()
			statusesMap.Set(name, component.HealthCheck(ctx))
		}()
	}
	wg.Wait()

	return statusesMap.Collect()
}
