package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vogue_nest/internal/kv"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
	"github.com/Skotchmaster/vogue_nest/internal/seed"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		t, _ := e.Event["type"].(string)
		out = append(out, t)
	}
	return out
}

func newSeededStore(t *testing.T) *repo.Store {
	t.Helper()
	return newSeededStoreOn(t, kv.NewMemoryStore())
}

func newSeededStoreOn(t *testing.T, backend kv.Store) *repo.Store {
	t.Helper()
	s := repo.NewStore(backend, seed.MustDefault())
	require.NoError(t, s.Init(context.Background(), false))
	return s
}

// failingDeleteKV fails every Delete while err is set.
type failingDeleteKV struct {
	kv.Store
	err error
}

func (f *failingDeleteKV) Delete(ctx context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	return f.Store.Delete(ctx, name)
}
