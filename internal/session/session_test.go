package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/completion"
	"github.com/NikitaCOEUR/mcfunction/internal/schemastore"
)

func catalogOf(names ...string) *catalog.Catalog {
	commands := make([]catalog.CommandVariant, 0, len(names))
	for _, name := range names {
		commands = append(commands, catalog.CommandVariant{Name: name})
	}
	return catalog.New(commands, nil, []catalog.SelectorArgumentDef{{Name: "tag", Kind: catalog.ArgumentString}})
}

func TestSession_Complete(t *testing.T) {
	s := New(catalogOf("say", "summon", "say"), nil, nil)

	resp := s.Complete(context.Background(), 3, "s", 1)
	require.True(t, resp.OK)
	assert.Equal(t, uint64(1), resp.Generation)
	assert.Equal(t, []string{"say", "summon"}, resp.Result.Labels())
	assert.Equal(t, 3, resp.Result.Items[0].Range.StartLine)
}

func TestSession_ReloadInvalidatesResponses(t *testing.T) {
	s := New(catalogOf("say"), nil, nil)

	stale := s.Complete(context.Background(), 1, "", 0)
	require.True(t, s.IsCurrent(stale.Generation))

	gen := s.Reload(catalogOf("kill"), schemastore.New())
	assert.Equal(t, uint64(2), gen)
	assert.Equal(t, gen, s.Generation())
	assert.False(t, s.IsCurrent(stale.Generation))

	called := false
	assert.False(t, s.Apply(stale, func(completion.Result) { called = true }))
	assert.False(t, called)

	fresh := s.Complete(context.Background(), 1, "", 0)
	assert.Equal(t, []string{"kill"}, fresh.Result.Labels())

	var applied []string
	assert.True(t, s.Apply(fresh, func(r completion.Result) { applied = r.Labels() }))
	assert.Equal(t, []string{"kill"}, applied)
}

func TestSession_ApplyIgnoresUnresolved(t *testing.T) {
	s := New(catalogOf("say"), nil, nil)

	resp := s.Complete(context.Background(), 1, "unknown ", 8)
	require.False(t, resp.OK)
	assert.False(t, s.Apply(resp, func(completion.Result) { t.Fatal("unexpected apply") }))
}

func TestSession_NilCatalog(t *testing.T) {
	s := New(nil, nil, nil)

	resp := s.Complete(context.Background(), 1, "", 0)
	require.True(t, resp.OK)
	assert.Empty(t, resp.Result.Items)
	assert.Empty(t, s.CommandNames())
}

func TestSession_Names(t *testing.T) {
	s := New(catalogOf("tp", "say", "tp"), nil, nil)

	assert.Equal(t, []string{"tp", "say"}, s.CommandNames())
	assert.Equal(t, []string{"tag"}, s.SelectorArgumentNames())
	assert.Len(t, s.Catalog().Variants("tp"), 2)
}

func TestShouldTrigger(t *testing.T) {
	tests := []struct {
		ch   rune
		want bool
	}{
		{' ', true},
		{'[', true},
		{'{', true},
		{'=', true},
		{',', true},
		{'!', true},
		{'@', true},
		{'\n', true},
		{'a', false},
		{']', false},
		{'\t', false},
	}

	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldTrigger(tt.ch))
		})
	}
}

func TestSession_ConcurrentReload(t *testing.T) {
	s := New(catalogOf("say"), nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Reload(catalogOf("say", "kill"), nil)
		}()
		go func() {
			defer wg.Done()
			resp := s.Complete(context.Background(), 1, "", 0)
			assert.True(t, resp.OK)
			assert.NotEmpty(t, resp.Result.Items)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(9), s.Generation())
}

func TestSession_ConcurrentReloadPublishesLatest(t *testing.T) {
	s := New(catalogOf("say"), nil, nil)

	var mu sync.Mutex
	names := map[uint64]string{}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("cmd%d", i)
			gen := s.Reload(catalogOf(name), nil)
			mu.Lock()
			names[gen] = name
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	gen := s.Generation()
	assert.Equal(t, uint64(33), gen)
	assert.Equal(t, []string{names[gen]}, s.CommandNames())

	resp := s.Complete(context.Background(), 1, "", 0)
	require.True(t, resp.OK)
	assert.Equal(t, gen, resp.Generation)
	assert.Equal(t, []string{names[gen]}, resp.Result.Labels())
	assert.True(t, s.Apply(resp, func(completion.Result) {}))
}
