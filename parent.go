package clix

import (
	"strings"

	"github.com/marcusfrdk/clix/internal/casing"
)

// ParentKind identifies the input source a parent node binds to.
type ParentKind int

const (
	// ParentOption is a flag-style input (--name).
	ParentOption ParentKind = iota
	// ParentArgument is a positional input.
	ParentArgument
	// ParentEnv reads its value from the process environment.
	ParentEnv
	// ParentTag is a cross-cutting aggregator grouping other parents.
	ParentTag
)

func (k ParentKind) String() string {
	switch k {
	case ParentOption:
		return "option"
	case ParentArgument:
		return "argument"
	case ParentEnv:
		return "env"
	case ParentTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Parent is one bound input (option, argument, environment variable) or
// a tag aggregator. Parents own an ordered list of children that
// process the bound value at invocation time.
type Parent struct {
	kind     ParentKind
	name     string
	flag     string
	short    string
	help     string
	typ      Kind
	typSet   bool
	elem     Kind
	required bool
	def      any
	nargs    int
	tags     []string
	variable string
	dotenv   string

	children []Child

	// tag aggregators track their member parents by back-reference.
	members []*Parent

	raw      any
	rawSet   bool
	provided bool
	value    any
	computed bool
}

// ParentOpt configures a parent node at construction time.
type ParentOpt func(*Parent)

// Type declares the value kind the raw input is converted to before
// dispatch. Defaults to the kind of the default value, else string.
func Type(kind Kind) ParentOpt {
	return func(p *Parent) {
		p.typ = kind
		p.typSet = true
	}
}

// Required marks the input as mandatory.
func Required() ParentOpt {
	return func(p *Parent) { p.required = true }
}

// Default sets the value used when the input is not provided. When no
// explicit Type is declared, the kind is inferred from this value.
func Default(value any) ParentOpt {
	return func(p *Parent) { p.def = value }
}

// Help sets the input's help text.
func Help(text string) ParentOpt {
	return func(p *Parent) { p.help = text }
}

// Short sets an option's one-letter shorthand ("-a" or "a").
func Short(flag string) ParentOpt {
	return func(p *Parent) {
		if casing.IsShortFlag(flag) {
			flag = strings.TrimPrefix(flag, "-")
		}
		p.short = flag
	}
}

// Tags associates the parent with one or more tags for cross-parameter
// validation. Referenced tags that were never declared are auto-created
// at build time.
func Tags(names ...string) ParentOpt {
	return func(p *Parent) {
		for _, name := range names {
			p.tags = append(p.tags, casing.ParamName(name))
		}
	}
}

// NArgs declares how many values a multi-value input consumes. The
// values arrive as a Tuple; a declared Type applies per element.
func NArgs(n int) ParentOpt {
	return func(p *Parent) { p.nargs = n }
}

// Variable overrides the environment variable an Env parent reads.
// Defaults to the SCREAMING_SNAKE_CASE form of the parent name.
func Variable(name string) ParentOpt {
	return func(p *Parent) { p.variable = name }
}

// Dotenv points an Env parent at a .env file consulted when the
// variable is absent from the process environment.
func Dotenv(path string) ParentOpt {
	return func(p *Parent) { p.dotenv = path }
}

// Children attaches child nodes directly to the parent, as an
// alternative to registering them through a Builder.
func Children(children ...Child) ParentOpt {
	return func(p *Parent) { p.children = append(p.children, children...) }
}

func newParent(kind ParentKind, name string, opts ...ParentOpt) *Parent {
	p := &Parent{
		kind: kind,
		name: casing.ParamName(name),
		typ:  KindString,
	}
	if kind == ParentOption {
		p.flag = casing.Kebab(name)
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.typSet && p.def != nil {
		p.typ = KindOf(p.def)
		p.typSet = true
	}
	if p.nargs > 1 {
		p.elem = KindString
		if p.typSet && p.typ != KindTuple {
			p.elem = p.typ
		}
		p.typ = KindTuple
		p.typSet = true
	}
	return p
}

// Option declares a flag-style input. The name may be given in flag
// form ("--api-key") or bare ("api-key"); the parameter name is the
// snake_case form either way.
func Option(name string, opts ...ParentOpt) *Parent {
	return newParent(ParentOption, name, opts...)
}

// Argument declares a positional input. Arguments are consumed in
// declaration order.
func Argument(name string, opts ...ParentOpt) *Parent {
	return newParent(ParentArgument, name, opts...)
}

// Env declares an input read from the process environment (with an
// optional .env fallback) instead of the command line.
func Env(name string, opts ...ParentOpt) *Parent {
	p := newParent(ParentEnv, name, opts...)
	if p.variable == "" {
		p.variable = casing.ScreamingSnake(p.name)
	}
	return p
}

// Tag declares a tag aggregator. Parents opt in via Tags; the tag's
// own children receive the aggregate of member values and must
// implement the Tag handler slot.
func Tag(name string, opts ...ParentOpt) *Parent {
	return newParent(ParentTag, name, opts...)
}

// Name returns the normalized snake_case parameter name.
func (p *Parent) Name() string { return p.name }

// Kind returns which input source the parent binds to.
func (p *Parent) Kind() ParentKind { return p.kind }

// ValueKind returns the declared (or inferred) value kind.
func (p *Parent) ValueKind() Kind { return p.typ }

// TagNames returns the tags this parent participates in.
func (p *Parent) TagNames() []string { return p.tags }

// ChildNodes returns the parent's ordered children.
func (p *Parent) ChildNodes() []Child { return p.children }

// Members returns a tag aggregator's member parents. Empty for
// non-tag parents.
func (p *Parent) Members() []*Parent { return p.members }

// WasProvided reports whether the user explicitly supplied the value,
// as opposed to the default being used.
func (p *Parent) WasProvided() bool { return p.provided }

// Value returns the processed value once the pipeline has run.
func (p *Parent) Value() any { return p.value }

// setRaw records the raw value from the source before processing.
func (p *Parent) setRaw(value any, provided bool) {
	p.raw = value
	p.rawSet = true
	p.provided = provided
	p.computed = false
	p.value = nil
}

func (p *Parent) addChild(child Child) {
	p.children = append(p.children, child)
}

// isTagged reports whether the parent participates in any tag or is a
// tag itself, which switches its Tag-handler children to aggregate
// mode.
func (p *Parent) isTagged() bool {
	return p.kind == ParentTag || len(p.tags) > 0
}

// ParentSnapshot is the {name, tags, value} record pushed onto the
// context trail as each parent executes.
type ParentSnapshot struct {
	Name  string
	Tags  []string
	Value any
}
