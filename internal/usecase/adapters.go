package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/film-grading/internal/domain/external"
)

// SourceAdapter maps provider-native records onto the neutral external shapes.
// Provider field names never travel past an adapter.
type SourceAdapter interface {
	Source() external.Source
	MapGameToExternal(raw map[string]any) (external.Game, error)
	MapPlayToExternal(raw map[string]any, externalGameID string) (external.Play, error)
}

// ProviderGame is one fetched game with its plays, still in provider-native form.
type ProviderGame struct {
	Game  map[string]any
	Plays []map[string]any
}

// ProviderFeed fetches a game by the provider's own reference.
type ProviderFeed interface {
	Source() external.Source
	FetchGame(ctx context.Context, ref string) (ProviderGame, error)
}

// AdapterRegistry resolves adapters and feeds by source tag.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters map[external.Source]SourceAdapter
	feeds    map[external.Source]ProviderFeed
}

func NewAdapterRegistry(adapters ...SourceAdapter) *AdapterRegistry {
	r := &AdapterRegistry{
		adapters: make(map[external.Source]SourceAdapter, len(adapters)),
		feeds:    make(map[external.Source]ProviderFeed),
	}
	for _, a := range adapters {
		r.RegisterAdapter(a)
	}
	return r
}

func (r *AdapterRegistry) RegisterAdapter(a SourceAdapter) {
	if a == nil {
		return
	}
	r.mu.Lock()
	r.adapters[a.Source()] = a
	r.mu.Unlock()
}

func (r *AdapterRegistry) RegisterFeed(f ProviderFeed) {
	if f == nil {
		return
	}
	r.mu.Lock()
	r.feeds[f.Source()] = f
	r.mu.Unlock()
}

func (r *AdapterRegistry) Adapter(source external.Source) (SourceAdapter, error) {
	r.mu.RLock()
	a, ok := r.adapters[source]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no adapter for source %q", ErrInvalidInput, source)
	}
	return a, nil
}

func (r *AdapterRegistry) Feed(source external.Source) (ProviderFeed, error) {
	r.mu.RLock()
	f, ok := r.feeds[source]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no provider feed for source %q", ErrInvalidInput, source)
	}
	return f, nil
}

// Sources lists every source with a registered adapter, sorted.
func (r *AdapterRegistry) Sources() []external.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]external.Source, 0, len(r.adapters))
	for s := range r.adapters {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func parseSource(raw string) (external.Source, error) {
	source, err := external.ParseSource(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return source, nil
}
