package clix

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marcusfrdk/clix/internal/ctxlog"
)

// HookPhase is a lifecycle phase hooks can attach to.
type HookPhase int

const (
	// PhaseBoot runs before the invocation context is initialized.
	PhaseBoot HookPhase = iota
	// PhaseInit runs after initialization, before the pipeline.
	PhaseInit
	// PhaseError runs when the pipeline or run function fails.
	PhaseError
	// PhaseExit always runs last.
	PhaseExit
)

func (p HookPhase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseInit:
		return "init"
	case PhaseError:
		return "error"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// HookEvent is the snapshot passed to hook handlers.
type HookEvent struct {
	Phase   HookPhase
	Command *cobra.Command
	Root    *RootNode
	Context *Context
	Err     error
}

// HookFunc is a hook handler.
type HookFunc func(event HookEvent) error

// ErrorMatcher decides whether an ERROR-phase hook applies to a given
// failure.
type ErrorMatcher func(error) bool

// MatchErrors matches failures wrapping any of the given sentinel
// errors.
func MatchErrors(targets ...error) ErrorMatcher {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// MatchAs matches failures assignable to the error type T, for example
// MatchAs[*clix.ProcessError]().
func MatchAs[T error]() ErrorMatcher {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}

// HookNode is one registered hook. The value returned by registration
// can be passed to Unregister.
type HookNode struct {
	phase   HookPhase
	fn      HookFunc
	scope   *RootNode
	include []ErrorMatcher
	exclude []ErrorMatcher
	async   bool
}

// HookOption configures a hook at registration time.
type HookOption func(*HookNode)

// Scoped restricts the hook to invocations of one root.
func Scoped(root *RootNode) HookOption {
	return func(h *HookNode) { h.scope = root }
}

// Include whitelists failures for an ERROR hook; the hook is skipped
// when no matcher applies. An Include with zero matchers never
// matches.
func Include(matchers ...ErrorMatcher) HookOption {
	return func(h *HookNode) {
		h.include = append([]ErrorMatcher{}, matchers...)
	}
}

// Exclude blacklists failures for an ERROR hook.
func Exclude(matchers ...ErrorMatcher) HookOption {
	return func(h *HookNode) { h.exclude = append(h.exclude, matchers...) }
}

// Async runs the hook on the invocation's hook runner instead of
// inline. Nested use from inside a running async hook is rejected.
func Async() HookOption {
	return func(h *HookNode) { h.async = true }
}

// HookRegistry stores hooks and runs them per phase. The zero value is
// not usable; use NewHookRegistry.
type HookRegistry struct {
	mu     sync.Mutex
	hooks  []*HookNode
	runner *asyncRunner
}

// NewHookRegistry returns an empty registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{}
}

func (r *HookRegistry) register(phase HookPhase, fn HookFunc, opts []HookOption) *HookNode {
	node := &HookNode{phase: phase, fn: fn}
	for _, opt := range opts {
		opt(node)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, node)
	return node
}

// OnBoot registers a BOOT hook.
func (r *HookRegistry) OnBoot(fn HookFunc, opts ...HookOption) *HookNode {
	return r.register(PhaseBoot, fn, opts)
}

// OnInit registers an INIT hook.
func (r *HookRegistry) OnInit(fn HookFunc, opts ...HookOption) *HookNode {
	return r.register(PhaseInit, fn, opts)
}

// OnError registers an ERROR hook.
func (r *HookRegistry) OnError(fn HookFunc, opts ...HookOption) *HookNode {
	return r.register(PhaseError, fn, opts)
}

// OnExit registers an EXIT hook.
func (r *HookRegistry) OnExit(fn HookFunc, opts ...HookOption) *HookNode {
	return r.register(PhaseExit, fn, opts)
}

// Unregister removes a previously registered hook. Unknown nodes are
// ignored.
func (r *HookRegistry) Unregister(node *HookNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.hooks {
		if h == node {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return
		}
	}
}

// iterHooks orders hooks for one phase: scoped before global, and
// most-recently-registered first within each group, so the most
// specific customization runs first.
func (r *HookRegistry) iterHooks(phase HookPhase, root *RootNode) []*HookNode {
	r.mu.Lock()
	defer r.mu.Unlock()

	var scoped, global []*HookNode
	for _, h := range r.hooks {
		if h.phase != phase {
			continue
		}
		if h.scope == nil {
			global = append(global, h)
		} else if h.scope == root {
			scoped = append(scoped, h)
		}
	}

	out := make([]*HookNode, 0, len(scoped)+len(global))
	for i := len(scoped) - 1; i >= 0; i-- {
		out = append(out, scoped[i])
	}
	for i := len(global) - 1; i >= 0; i-- {
		out = append(out, global[i])
	}
	return out
}

// Run executes all hooks for the given phase. BOOT and INIT failures
// propagate; ERROR and EXIT failures (and panics) are swallowed with a
// logged warning so the lifecycle always reaches EXIT. After EXIT the
// async runner is torn down.
func (r *HookRegistry) Run(phase HookPhase, cmd *cobra.Command, root *RootNode, ctx *Context, cause error) error {
	for _, hook := range r.iterHooks(phase, root) {
		// Only scoped hooks see the full invocation context.
		hookCtx := ctx
		if hook.scope == nil {
			hookCtx = nil
		}
		event := HookEvent{
			Phase:   phase,
			Command: cmd,
			Root:    hook.scope,
			Context: hookCtx,
			Err:     cause,
		}

		if phase == PhaseError {
			if cause == nil || !hook.matches(cause) {
				continue
			}
		}

		if err := r.invoke(hook, event); err != nil {
			if phase == PhaseError || phase == PhaseExit {
				logger := ctxlog.FromContext(eventContext(ctx))
				logger.Warn("hook handler failed during terminal phase",
					"phase", phase.String(), "error", err)
				continue
			}
			return err
		}
	}

	if phase == PhaseExit {
		r.closeRunner()
	}
	return nil
}

func eventContext(ctx *Context) context.Context {
	if ctx != nil {
		return ctx.Context()
	}
	return context.Background()
}

// matches applies the ERROR-phase include/exclude filters.
func (h *HookNode) matches(err error) bool {
	if h.include != nil {
		matched := false
		for _, m := range h.include {
			if m(err) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, m := range h.exclude {
		if m(err) {
			return false
		}
	}
	return true
}

// invoke runs one hook, on the async runner when requested. Panics are
// converted to errors so terminal phases can swallow them.
func (r *HookRegistry) invoke(hook *HookNode, event HookEvent) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("hook handler panicked: %v", recovered)
		}
	}()

	if hook.async {
		return r.asyncRun(hook.fn, event)
	}
	return hook.fn(event)
}

// asyncRunner drives async hooks. It is created lazily per registry
// and torn down at EXIT; re-entry from a running async hook is refused
// rather than risking a deadlock.
type asyncRunner struct {
	mu      sync.Mutex
	running bool
}

func (r *HookRegistry) asyncRun(fn HookFunc, event HookEvent) error {
	r.mu.Lock()
	if r.runner == nil {
		r.runner = &asyncRunner{}
	}
	runner := r.runner
	r.mu.Unlock()

	runner.mu.Lock()
	if runner.running {
		runner.mu.Unlock()
		return &ProcessError{
			Message: "cannot use async hook handlers inside an already-running async hook",
			Tip:     "use a synchronous hook, or run the work outside the hook lifecycle",
		}
	}
	runner.running = true
	runner.mu.Unlock()

	defer func() {
		runner.mu.Lock()
		runner.running = false
		runner.mu.Unlock()
	}()

	group, _ := errgroup.WithContext(context.Background())
	group.Go(func() error { return fn(event) })
	return group.Wait()
}

func (r *HookRegistry) closeRunner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runner = nil
}

// defaultHooks is the process-wide registry used by the package-level
// registration helpers and by commands built without an explicit
// registry.
var defaultHooks = NewHookRegistry()

// Hooks returns the default hook registry.
func Hooks() *HookRegistry { return defaultHooks }

// OnBoot registers a BOOT hook on the default registry.
func OnBoot(fn HookFunc, opts ...HookOption) *HookNode {
	return defaultHooks.OnBoot(fn, opts...)
}

// OnInit registers an INIT hook on the default registry.
func OnInit(fn HookFunc, opts ...HookOption) *HookNode {
	return defaultHooks.OnInit(fn, opts...)
}

// OnError registers an ERROR hook on the default registry.
func OnError(fn HookFunc, opts ...HookOption) *HookNode {
	return defaultHooks.OnError(fn, opts...)
}

// OnExit registers an EXIT hook on the default registry.
func OnExit(fn HookFunc, opts ...HookOption) *HookNode {
	return defaultHooks.OnExit(fn, opts...)
}
