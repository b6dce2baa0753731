package clix

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marcusfrdk/clix/internal/ctxlog"
)

// runState is the mutable per-invocation state shared by every derived
// Context: the free-form data store and the parent execution trail.
type runState struct {
	data  map[string]any
	trail []ParentSnapshot
}

// Context is the execution state threaded into every handler call. It
// is effectively immutable per dispatch step; WithChild and WithParent
// derive shallow copies for nested dispatch without mutating the
// original. Only Data is intentionally shared and mutable, so
// cooperating nodes can pass information to one another.
type Context struct {
	ctx     context.Context
	state   *runState
	tagMode bool

	// Root is the command's root node.
	Root *RootNode
	// Current is the node being dispatched right now, if any.
	Current Node
	// Parent is the parent (or tag) whose children are executing.
	Parent *Parent
	// Command is the underlying cobra command for the invocation.
	Command *cobra.Command
	// Parents indexes all value-bearing parent nodes by name.
	Parents map[string]*Parent
	// Tags indexes all tag aggregators by name.
	Tags map[string]*Parent
	// Children indexes all child nodes by name.
	Children map[string]Child
	// Data is the shared store for cross-node communication.
	Data map[string]any
	// Debug reports whether the command runs in debug mode.
	Debug bool
}

// newContext builds the per-invocation root context.
func newContext(ctx context.Context, root *RootNode, cmd *cobra.Command) *Context {
	state := &runState{data: make(map[string]any)}
	c := &Context{
		ctx:      ctx,
		state:    state,
		Root:     root,
		Command:  cmd,
		Parents:  make(map[string]*Parent),
		Tags:     make(map[string]*Parent),
		Children: make(map[string]Child),
		Data:     state.data,
		Debug:    root != nil && root.debug,
	}
	return c
}

// NewContext builds a standalone execution context, mainly for
// exercising custom children outside a command invocation.
func NewContext(ctx context.Context) *Context {
	return newContext(ctx, nil, nil)
}

// Context returns the context.Context for the invocation, carrying
// deadlines and the invocation logger.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Logger returns the invocation's slog.Logger.
func (c *Context) Logger() *slog.Logger {
	return ctxlog.FromContext(c.Context())
}

// WithChild derives a copy of the context with the given child as the
// current node.
func (c *Context) WithChild(child Child) *Context {
	derived := *c
	derived.Current = child
	return &derived
}

// WithParent derives a copy of the context scoped to the given parent.
// Tag-aggregate mode follows from the parent's kind.
func (c *Context) WithParent(p *Parent) *Context {
	derived := *c
	derived.Parent = p
	derived.Current = p
	derived.tagMode = p != nil && p.kind == ParentTag
	return &derived
}

// WithTagMode derives a copy with tag-aggregate dispatch forced on.
// The pipeline uses it when a tagged value parent runs a Tag-capable
// child; it is also handy for exercising tag handlers directly.
func (c *Context) WithTagMode() *Context {
	derived := *c
	derived.tagMode = true
	return &derived
}

// IsTagMode reports whether dispatch is in tag-aggregate mode.
func (c *Context) IsTagMode() bool { return c.tagMode }

// IsTag reports whether the active parent is a tag aggregator.
func (c *Context) IsTag() bool {
	return c.Parent != nil && c.Parent.kind == ParentTag
}

// IsOption reports whether the active parent is an option.
func (c *Context) IsOption() bool {
	return c.Parent != nil && c.Parent.kind == ParentOption
}

// IsArgument reports whether the active parent is a positional
// argument.
func (c *Context) IsArgument() bool {
	return c.Parent != nil && c.Parent.kind == ParentArgument
}

// IsEnv reports whether the active parent reads from the environment.
func (c *Context) IsEnv() bool {
	return c.Parent != nil && c.Parent.kind == ParentEnv
}

// Trail returns the snapshots of parents executed so far, in execution
// order.
func (c *Context) Trail() []ParentSnapshot {
	return c.state.trail
}

// pushParent records a parent snapshot on the shared trail.
func (c *Context) pushParent(snapshot ParentSnapshot) {
	c.state.trail = append(c.state.trail, snapshot)
}
