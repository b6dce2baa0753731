package clix

import "github.com/marcusfrdk/clix/internal/casing"

// Node is any named entity in a command tree: the root, a parent or a
// child.
type Node interface {
	Name() string
}

// RunFunc is the user function a command injects its processed values
// into.
type RunFunc func(ctx *Context, values Values) error

// RootNode represents one command or group. It exclusively owns its
// parent nodes, keyed by normalized name with insertion order
// preserved.
type RootNode struct {
	name    string
	summary string
	debug   bool
	group   bool
	run     RunFunc

	parents []*Parent
	byName  map[string]*Parent
}

// RootOpt configures a root node at construction time.
type RootOpt func(*RootNode)

// Summary sets the command's one-line description.
func Summary(text string) RootOpt {
	return func(r *RootNode) { r.summary = text }
}

// Debug enables debug mode for the command: handler failures log at
// debug level with full detail and the context's Debug flag is set.
func Debug() RootOpt {
	return func(r *RootNode) { r.debug = true }
}

// CommandRoot declares the root node for a leaf command.
func CommandRoot(name string, run RunFunc, opts ...RootOpt) *RootNode {
	r := &RootNode{
		name:   casing.Snake(name),
		run:    run,
		byName: make(map[string]*Parent),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GroupRoot declares the root node for a command group. Groups carry no
// run function of their own; subcommands are attached to the built
// Command.
func GroupRoot(name string, opts ...RootOpt) *RootNode {
	r := CommandRoot(name, nil, opts...)
	r.group = true
	return r
}

// Name returns the root's normalized name.
func (r *RootNode) Name() string { return r.name }

// Parents returns the attached parent nodes in declaration order.
func (r *RootNode) Parents() []*Parent { return r.parents }

// Parent returns the named parent node, or nil.
func (r *RootNode) Parent(name string) *Parent { return r.byName[name] }

// attach adds a parent to the root, enforcing sibling-name uniqueness.
func (r *RootNode) attach(p *Parent) error {
	if _, exists := r.byName[p.name]; exists {
		return &ParentExistsError{Name: p.name}
	}
	r.parents = append(r.parents, p)
	r.byName[p.name] = p
	return nil
}
