package clix

// entryKind discriminates queued registrations.
type entryKind int

const (
	entryRoot entryKind = iota
	entryParent
	entryChild
)

type entry struct {
	kind   entryKind
	root   *RootNode
	parent *Parent
	child  Child
}

// Builder accumulates out-of-order registrations and reconstructs the
// root -> parent -> child hierarchy once the root is seen. Composition
// observes nodes bottom-up (children before their parent, parents
// before the root), so entries are queued FIFO and the tree is rebuilt
// by walking the queue in reverse, which recovers the declared
// top-down order.
//
// Each root gets its own Builder; there is no process-wide shared
// queue, so multiple commands built concurrently do not interfere.
type Builder struct {
	queue  []entry
	root   *RootNode
	recent *Parent
}

// NewBuilder returns an empty builder for one command tree.
func NewBuilder() *Builder {
	return &Builder{}
}

// RegisterChild queues a child node. Attachment is deferred until the
// root is registered.
func (b *Builder) RegisterChild(child Child) {
	b.queue = append(b.queue, entry{kind: entryChild, child: child})
}

// RegisterParent queues a parent node. Attachment is deferred until the
// root is registered.
func (b *Builder) RegisterParent(parent *Parent) {
	b.queue = append(b.queue, entry{kind: entryParent, parent: parent})
}

// RegisterRoot registers the root and rebuilds the tree from the
// queued entries. The queue is cleared afterwards whether or not the
// build succeeds.
func (b *Builder) RegisterRoot(root *RootNode) error {
	b.queue = append(b.queue, entry{kind: entryRoot, root: root})
	defer func() {
		b.queue = nil
		b.recent = nil
	}()

	for i := len(b.queue) - 1; i >= 0; i-- {
		e := b.queue[i]
		switch e.kind {
		case entryRoot:
			if b.root != nil {
				return &RootExistsError{Existing: b.root.name, New: e.root.name}
			}
			b.root = e.root

		case entryParent:
			if b.root == nil {
				return &NoRootError{Node: e.parent.name}
			}
			if err := b.root.attach(e.parent); err != nil {
				return err
			}
			b.recent = e.parent

		case entryChild:
			if b.root == nil {
				return &NoRootError{Node: e.child.Name()}
			}
			if b.recent == nil {
				return &NoParentError{Child: e.child.Name()}
			}
			b.recent.addChild(e.child)
		}
	}
	return nil
}

// Root returns the built root node, or nil before RegisterRoot.
func (b *Builder) Root() *RootNode { return b.root }
