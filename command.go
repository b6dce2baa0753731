package clix

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcusfrdk/clix/internal/casing"
	"github.com/marcusfrdk/clix/internal/dotenv"
)

// Command binds a fully registered root node to a cobra command. It
// owns the flag bindings, positional argument layout, environment
// resolution and the hook lifecycle around each invocation.
type Command struct {
	root  *RootNode
	cobra *cobra.Command
	hooks *HookRegistry

	// tags holds every tag aggregator, declared or auto-created, in
	// first-reference order.
	tags   []*Parent
	byTag  map[string]*Parent
	values []*Parent // value-bearing parents in declaration order
	args   []*Parent // positional parents in declaration order
}

// New composes a command from a root node and its parents and
// children. Items are reconciled the way decorators stack: the
// bottom-most item is given first, so the slice is registered in
// reverse before the root closes the tree.
func New(root *RootNode, items ...any) (*Command, error) {
	b := NewBuilder()
	for i := len(items) - 1; i >= 0; i-- {
		switch item := items[i].(type) {
		case *Parent:
			b.RegisterParent(item)
		case Child:
			b.RegisterChild(item)
		default:
			return nil, &UsageError{Message: fmt.Sprintf(
				"cannot compose a command from %T: expected a parent or child node", items[i])}
		}
	}
	if err := b.RegisterRoot(root); err != nil {
		return nil, err
	}
	return newCommand(root)
}

// MustNew is New panicking on error, for package-level command
// variables.
func MustNew(root *RootNode, items ...any) *Command {
	c, err := New(root, items...)
	if err != nil {
		panic(err)
	}
	return c
}

func newCommand(root *RootNode) (*Command, error) {
	c := &Command{
		root:  root,
		hooks: defaultHooks,
		byTag: make(map[string]*Parent),
	}
	if err := c.resolveTags(); err != nil {
		return nil, err
	}

	for _, p := range root.parents {
		switch p.kind {
		case ParentTag:
			// already collected by resolveTags
		case ParentArgument:
			c.values = append(c.values, p)
			c.args = append(c.args, p)
		default:
			c.values = append(c.values, p)
		}
	}

	cc := &cobra.Command{
		Use:           c.usageLine(),
		Short:         root.summary,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          c.validateArgCount,
	}
	cc.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Message: err.Error()}
	})
	if !root.group {
		cc.RunE = c.runE
	}
	for _, p := range root.parents {
		if p.kind == ParentOption {
			bindFlag(cc.Flags(), p)
		}
	}
	c.cobra = cc
	return c, nil
}

// resolveTags collects declared tag aggregators, auto-creates tags
// that are only ever referenced, and wires member back-references in
// declaration order.
func (c *Command) resolveTags() error {
	for _, p := range c.root.parents {
		if p.kind == ParentTag {
			c.tags = append(c.tags, p)
			c.byTag[p.name] = p
		}
	}
	for _, p := range c.root.parents {
		if p.kind == ParentTag {
			continue
		}
		for _, name := range p.tags {
			name = casing.ParamName(name)
			tag, ok := c.byTag[name]
			if !ok {
				if existing := c.root.byName[name]; existing != nil {
					return &DuplicateNameError{
						Name:     name,
						PrevKind: existing.kind.String(),
						NewKind:  ParentTag.String(),
					}
				}
				tag = newParent(ParentTag, name)
				c.tags = append(c.tags, tag)
				c.byTag[name] = tag
			}
			tag.members = append(tag.members, p)
		}
	}
	return nil
}

func (c *Command) usageLine() string {
	var sb strings.Builder
	sb.WriteString(c.root.name)
	for _, p := range c.root.parents {
		if p.kind != ParentArgument {
			continue
		}
		placeholder := casing.ScreamingSnake(p.name)
		n := p.nargs
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			sb.WriteString(" ")
			if p.required {
				sb.WriteString(placeholder)
			} else {
				sb.WriteString("[" + placeholder + "]")
			}
		}
	}
	return sb.String()
}

// bindFlag registers one option on the flag set with a representation
// matching its declared kind. Defaults are applied after parsing, not
// through pflag, so that an unset flag with no default stays nil.
func bindFlag(fs *pflag.FlagSet, p *Parent) {
	switch p.typ {
	case KindBool:
		def, _ := p.def.(bool)
		fs.BoolP(p.flag, p.short, def, p.help)
	case KindInt:
		def, _ := p.def.(int)
		fs.IntP(p.flag, p.short, def, p.help)
	case KindFloat:
		def, _ := p.def.(float64)
		fs.Float64P(p.flag, p.short, def, p.help)
	case KindTuple:
		fs.StringSliceP(p.flag, p.short, nil, p.help)
	case KindList:
		fs.StringArrayP(p.flag, p.short, nil, p.help)
	case KindDict:
		fs.VarP(&dictValue{}, p.flag, p.short, p.help)
	default:
		def, _ := p.def.(string)
		fs.StringP(p.flag, p.short, def, p.help)
	}
}

// dictValue collects key=value pairs for Dict options, repeatable and
// comma-separable.
type dictValue struct {
	entries map[string]string
}

func (d *dictValue) String() string { return fmt.Sprintf("%v", d.entries) }

func (d *dictValue) Type() string { return "key=value" }

func (d *dictValue) Set(raw string) error {
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%q must be formatted as key=value", pair)
		}
		if d.entries == nil {
			d.entries = make(map[string]string)
		}
		d.entries[key] = value
	}
	return nil
}

func (d *dictValue) reset() { d.entries = nil }

// validateArgCount rejects surplus positional arguments up front;
// missing required arguments are reported per-argument during raw
// extraction for a more precise message.
func (c *Command) validateArgCount(_ *cobra.Command, args []string) error {
	max := 0
	for _, p := range c.args {
		n := p.nargs
		if n < 1 {
			n = 1
		}
		max += n
	}
	if len(args) > max {
		return &UsageError{Message: fmt.Sprintf(
			"got %d positional arguments, expected at most %d", len(args), max)}
	}
	return nil
}

// AddCommand attaches a subcommand to a group.
func (c *Command) AddCommand(subs ...*Command) {
	for _, sub := range subs {
		c.cobra.AddCommand(sub.cobra)
	}
}

// Cobra exposes the underlying cobra command for integration with an
// existing command tree.
func (c *Command) Cobra() *cobra.Command { return c.cobra }

// Root returns the command's root node.
func (c *Command) Root() *RootNode { return c.root }

// Execute parses os.Args and runs the command.
func (c *Command) Execute() error {
	return c.ExecuteContext(context.Background())
}

// ExecuteContext parses os.Args and runs the command under the given
// context.
func (c *Command) ExecuteContext(ctx context.Context) error {
	resetFlags(c.cobra)
	return c.cobra.ExecuteContext(ctx)
}

// resetFlags clears parse state left over from a previous execution:
// pflag slice values accumulate across Set calls, so a re-executed
// command would otherwise see the prior run's values prepended.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		}
		if rv, ok := f.Value.(interface{ reset() }); ok {
			rv.reset()
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runE is the cobra entry point: it drives the hook lifecycle around
// raw-value extraction, the per-parent child pipelines and the user's
// run function.
func (c *Command) runE(cmd *cobra.Command, args []string) error {
	if err := c.hooks.Run(PhaseBoot, cmd, c.root, nil, nil); err != nil {
		// The lifecycle always reaches the exit phase, even when boot
		// aborts the invocation.
		_ = c.hooks.Run(PhaseExit, cmd, c.root, nil, err)
		return err
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx := newContext(base, c.root, cmd)
	c.populate(ctx)

	err := c.invoke(ctx, cmd, args)
	if err != nil {
		// Swallowed internally: error hooks never mask the cause.
		_ = c.hooks.Run(PhaseError, cmd, c.root, ctx, err)
	}
	_ = c.hooks.Run(PhaseExit, cmd, c.root, ctx, err)
	return err
}

func (c *Command) populate(ctx *Context) {
	for _, p := range c.values {
		ctx.Parents[p.name] = p
	}
	for _, tag := range c.tags {
		ctx.Tags[tag.name] = tag
	}
	for _, p := range c.root.parents {
		for _, child := range p.children {
			ctx.Children[child.Name()] = child
		}
	}
}

func (c *Command) invoke(ctx *Context, cmd *cobra.Command, args []string) error {
	if err := c.hooks.Run(PhaseInit, cmd, c.root, ctx, nil); err != nil {
		return err
	}

	argIndex := 0
	for _, p := range c.values {
		raw, provided, err := c.rawValue(cmd, p, args, &argIndex)
		if err != nil {
			return &ParameterError{Parent: p.name, Err: err}
		}
		if p.required && !provided && raw == nil {
			return &UsageError{Message: fmt.Sprintf("missing required %s %q", p.kind, p.name)}
		}
		p.setRaw(raw, provided)
	}
	for _, tag := range c.tags {
		tag.setRaw(nil, false)
	}

	values := make(Values, len(c.values))
	for _, p := range c.values {
		value, err := executeParent(p, ctx)
		if err != nil {
			return err
		}
		values[p.name] = value
	}
	for _, tag := range c.tags {
		if len(tag.children) == 0 {
			continue
		}
		if _, err := executeParent(tag, ctx); err != nil {
			return err
		}
	}

	if c.root.run == nil {
		return nil
	}
	return c.root.run(ctx, values)
}

// rawValue extracts one parent's raw value from its source. The second
// return reports whether the user explicitly provided it.
func (c *Command) rawValue(cmd *cobra.Command, p *Parent, args []string, argIndex *int) (any, bool, error) {
	switch p.kind {
	case ParentOption:
		return optionRaw(cmd.Flags(), p)
	case ParentArgument:
		return argumentRaw(p, args, argIndex)
	case ParentEnv:
		return envRaw(p)
	default:
		return nil, false, fmt.Errorf("parent %q has no value source", p.name)
	}
}

func optionRaw(fs *pflag.FlagSet, p *Parent) (any, bool, error) {
	flag := fs.Lookup(p.flag)
	if flag == nil || !flag.Changed {
		return p.def, false, nil
	}
	switch p.typ {
	case KindBool:
		v, err := fs.GetBool(p.flag)
		return v, true, err
	case KindInt:
		v, err := fs.GetInt(p.flag)
		return v, true, err
	case KindFloat:
		v, err := fs.GetFloat64(p.flag)
		return v, true, err
	case KindTuple:
		raws, err := fs.GetStringSlice(p.flag)
		if err != nil {
			return nil, true, err
		}
		if p.nargs > 1 && len(raws) != p.nargs {
			return nil, true, &UsageError{Message: fmt.Sprintf(
				"option %q expects %d values, got %d", p.name, p.nargs, len(raws))}
		}
		elem := p.elem
		if elem == KindNone {
			elem = KindString
		}
		tuple, err := convertElems(elem, raws)
		return tuple, true, err
	case KindList:
		raws, err := fs.GetStringArray(p.flag)
		if err != nil {
			return nil, true, err
		}
		list := make([]any, len(raws))
		for i, raw := range raws {
			list[i] = raw
		}
		return list, true, nil
	case KindDict:
		dv, ok := flag.Value.(*dictValue)
		if !ok {
			return nil, true, fmt.Errorf("option %q is not bound as a dict", p.name)
		}
		dict := make(map[string]any, len(dv.entries))
		for k, v := range dv.entries {
			dict[k] = v
		}
		return dict, true, nil
	default:
		raw, err := fs.GetString(p.flag)
		if err != nil {
			return nil, true, err
		}
		value, err := convertRaw(p.typ, raw)
		return value, true, err
	}
}

func argumentRaw(p *Parent, args []string, argIndex *int) (any, bool, error) {
	n := p.nargs
	if n < 1 {
		n = 1
	}
	remaining := args[*argIndex:]
	if len(remaining) == 0 {
		return p.def, false, nil
	}
	if len(remaining) < n {
		return nil, false, &UsageError{Message: fmt.Sprintf(
			"argument %q expects %d values, got %d", p.name, n, len(remaining))}
	}
	raws := remaining[:n]
	*argIndex += n

	if n == 1 && p.typ != KindTuple {
		value, err := convertRaw(p.typ, raws[0])
		return value, true, err
	}
	elem := p.elem
	if elem == KindNone {
		elem = KindString
	}
	tuple, err := convertElems(elem, raws)
	return tuple, true, err
}

func envRaw(p *Parent) (any, bool, error) {
	raw, ok := os.LookupEnv(p.variable)
	if !ok && p.dotenv != "" {
		vars, err := dotenv.Load(p.dotenv)
		if err != nil {
			return nil, false, err
		}
		raw, ok = vars[p.variable]
	}
	if !ok {
		return p.def, false, nil
	}
	if p.typ == KindTuple {
		raws := strings.Split(raw, ",")
		if p.nargs > 1 && len(raws) != p.nargs {
			return nil, true, &UsageError{Message: fmt.Sprintf(
				"env %q expects %d values, got %d", p.name, p.nargs, len(raws))}
		}
		elem := p.elem
		if elem == KindNone {
			elem = KindString
		}
		tuple, err := convertElems(elem, raws)
		return tuple, true, err
	}
	value, err := convertRaw(p.typ, raw)
	return value, true, err
}
