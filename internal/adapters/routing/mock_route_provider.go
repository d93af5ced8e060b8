package routing

import (
	"context"
	"fmt"
	"sync"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type MockPair struct {
	From, To string
	Route    ports.Route
	Err      error
}

// MockRouteProvider serves fixed routes keyed by the String form of each
// location, and records the pairs it was asked for.
type MockRouteProvider struct {
	mu    sync.Mutex
	m     map[string]MockPair
	calls []string
}

func NewMockRouteProvider(pairs []MockPair) *MockRouteProvider {
	m := make(map[string]MockPair, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Location) (ports.Route, error) {
	key := origin.String() + "|" + destination.String()

	p.mu.Lock()
	p.calls = append(p.calls, key)
	pair, ok := p.m[key]
	p.mu.Unlock()

	if !ok {
		return ports.Route{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}
	if pair.Err != nil {
		return ports.Route{}, pair.Err
	}

	return pair.Route, nil
}

// Calls returns the "from|to" keys requested so far, in order.
func (p *MockRouteProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}
