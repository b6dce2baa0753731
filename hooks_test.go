package clix

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookOrdering(t *testing.T) {
	t.Parallel()

	root := CommandRoot("app", nil)
	other := CommandRoot("other", nil)
	r := NewHookRegistry()

	var order []string
	record := func(name string) HookFunc {
		return func(event HookEvent) error {
			order = append(order, name)
			return nil
		}
	}

	r.OnInit(record("global-1"))
	r.OnInit(record("scoped-1"), Scoped(root))
	r.OnInit(record("global-2"))
	r.OnInit(record("scoped-2"), Scoped(root))
	r.OnInit(record("foreign"), Scoped(other))

	require.NoError(t, r.Run(PhaseInit, nil, root, nil, nil))

	// Scoped before global, most recent first within each group; hooks
	// scoped to another root never run.
	assert.Equal(t, []string{"scoped-2", "scoped-1", "global-2", "global-1"}, order)
}

func TestHookPhasePropagation(t *testing.T) {
	t.Parallel()

	t.Run("boot failures abort", func(t *testing.T) {
		r := NewHookRegistry()
		boom := errors.New("boot boom")
		r.OnBoot(func(HookEvent) error { return boom })
		assert.ErrorIs(t, r.Run(PhaseBoot, nil, nil, nil, nil), boom)
	})

	t.Run("exit failures are swallowed", func(t *testing.T) {
		r := NewHookRegistry()
		ran := false
		r.OnExit(func(HookEvent) error { ran = true; return errors.New("ignored") })
		assert.NoError(t, r.Run(PhaseExit, nil, nil, nil, nil))
		assert.True(t, ran)
	})

	t.Run("panicking exit hook is contained", func(t *testing.T) {
		r := NewHookRegistry()
		r.OnExit(func(HookEvent) error { panic("contained") })
		assert.NoError(t, r.Run(PhaseExit, nil, nil, nil, nil))
	})
}

func TestErrorHookFilters(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")

	t.Run("skipped without a cause", func(t *testing.T) {
		r := NewHookRegistry()
		ran := false
		r.OnError(func(HookEvent) error { ran = true; return nil })
		require.NoError(t, r.Run(PhaseError, nil, nil, nil, nil))
		assert.False(t, ran)
	})

	t.Run("include whitelist", func(t *testing.T) {
		r := NewHookRegistry()
		var got error
		r.OnError(func(event HookEvent) error { got = event.Err; return nil },
			Include(MatchErrors(sentinel)))

		require.NoError(t, r.Run(PhaseError, nil, nil, nil, errors.New("other")))
		assert.Nil(t, got)

		require.NoError(t, r.Run(PhaseError, nil, nil, nil, sentinel))
		assert.ErrorIs(t, got, sentinel)
	})

	t.Run("empty include never matches", func(t *testing.T) {
		r := NewHookRegistry()
		ran := false
		r.OnError(func(HookEvent) error { ran = true; return nil }, Include())
		require.NoError(t, r.Run(PhaseError, nil, nil, nil, sentinel))
		assert.False(t, ran)
	})

	t.Run("exclude blacklist", func(t *testing.T) {
		r := NewHookRegistry()
		ran := false
		r.OnError(func(HookEvent) error { ran = true; return nil },
			Exclude(MatchErrors(sentinel)))
		require.NoError(t, r.Run(PhaseError, nil, nil, nil, sentinel))
		assert.False(t, ran)
	})

	t.Run("typed matcher", func(t *testing.T) {
		r := NewHookRegistry()
		ran := false
		r.OnError(func(HookEvent) error { ran = true; return nil },
			Include(MatchAs[*ValidationError]()))
		require.NoError(t, r.Run(PhaseError, nil, nil, nil, Validationf("nope")))
		assert.True(t, ran)
	})
}

func TestHookUnregister(t *testing.T) {
	t.Parallel()

	r := NewHookRegistry()
	ran := false
	node := r.OnInit(func(HookEvent) error { ran = true; return nil })
	r.Unregister(node)
	require.NoError(t, r.Run(PhaseInit, nil, nil, nil, nil))
	assert.False(t, ran)
}

func TestAsyncHooks(t *testing.T) {
	t.Parallel()

	t.Run("async hooks complete before exit returns", func(t *testing.T) {
		r := NewHookRegistry()
		var mu sync.Mutex
		count := 0
		r.OnInit(func(HookEvent) error {
			mu.Lock()
			defer mu.Unlock()
			count++
			return nil
		}, Async())

		require.NoError(t, r.Run(PhaseInit, nil, nil, nil, nil))
		require.NoError(t, r.Run(PhaseExit, nil, nil, nil, nil))

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, count)
	})

	t.Run("nested async registration is rejected", func(t *testing.T) {
		r := NewHookRegistry()
		var nested error
		r.OnInit(func(event HookEvent) error {
			nested = r.Run(PhaseBoot, nil, nil, nil, nil)
			return nil
		}, Async())
		r.OnBoot(func(HookEvent) error { return nil }, Async())

		require.NoError(t, r.Run(PhaseInit, nil, nil, nil, nil))
		require.NoError(t, r.Run(PhaseExit, nil, nil, nil, nil))

		var processErr *ProcessError
		assert.ErrorAs(t, nested, &processErr)
	})
}
