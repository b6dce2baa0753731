package manifest

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/internal/ctxlog"
	"github.com/marcusfrdk/clix/internal/fsutil"
	"github.com/marcusfrdk/clix/registry"
)

// Loader builds commands from manifest files. Child names resolve
// against the registry; run functions are bound by command name, with
// a value-echoing default for unbound commands.
type Loader struct {
	registry *registry.Registry
	runners  map[string]clix.RunFunc
}

// NewLoader creates a Loader resolving children against the given
// registry.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{
		registry: reg,
		runners:  make(map[string]clix.RunFunc),
	}
}

// Bind attaches a run function to the named command. Without a
// binding, the command prints its processed values.
func (l *Loader) Bind(command string, run clix.RunFunc) {
	l.runners[command] = run
}

// LoadFile parses one manifest file and builds its commands.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*clix.Command, error) {
	parser := hclparse.NewParser()
	return l.loadFile(ctx, path, parser)
}

// LoadDir finds every .hcl file under dir and builds the commands of
// all of them.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*clix.Command, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifests from path", "path", dir)

	files, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find manifest files in %s: %w", dir, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", dir)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var commands []*clix.Command
	for _, file := range files {
		loaded, err := l.loadFile(ctx, file, parser)
		if err != nil {
			return nil, err
		}
		commands = append(commands, loaded...)
	}
	return commands, nil
}

func (l *Loader) loadFile(ctx context.Context, path string, parser *hclparse.Parser) ([]*clix.Command, error) {
	// Scope the logger to the file being parsed.
	logger := ctxlog.FromContext(ctxlog.With(ctx, "path", path))
	logger.Debug("Parsing manifest file")

	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest file %s: %w", path, diags)
	}

	var parsed manifestFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest file %s: %w", path, diags)
	}

	var commands []*clix.Command
	for _, cb := range parsed.Commands {
		command, err := l.buildCommand(cb)
		if err != nil {
			return nil, fmt.Errorf("command %q in %s: %w", cb.Name, path, err)
		}
		commands = append(commands, command)
	}
	for _, gb := range parsed.Groups {
		group, err := l.buildGroup(gb)
		if err != nil {
			return nil, fmt.Errorf("group %q in %s: %w", gb.Name, path, err)
		}
		commands = append(commands, group)
	}
	return commands, nil
}

func (l *Loader) buildGroup(gb *groupBlock) (*clix.Command, error) {
	var rootOpts []clix.RootOpt
	if gb.Summary != "" {
		rootOpts = append(rootOpts, clix.Summary(gb.Summary))
	}
	group, err := clix.New(clix.GroupRoot(gb.Name, rootOpts...))
	if err != nil {
		return nil, err
	}
	for _, cb := range gb.Commands {
		sub, err := l.buildCommand(cb)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", cb.Name, err)
		}
		group.AddCommand(sub)
	}
	return group, nil
}

func (l *Loader) buildCommand(cb *commandBlock) (*clix.Command, error) {
	var rootOpts []clix.RootOpt
	if cb.Summary != "" {
		rootOpts = append(rootOpts, clix.Summary(cb.Summary))
	}
	if cb.Debug {
		rootOpts = append(rootOpts, clix.Debug())
	}

	run := l.runners[cb.Name]
	if run == nil {
		run = echoRunner
	}
	root := clix.CommandRoot(cb.Name, run, rootOpts...)

	var items []any
	for _, pb := range cb.Options {
		parent, err := l.buildParent(clix.Option, pb)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", pb.Name, err)
		}
		items = append(items, parent)
	}
	for _, pb := range cb.Arguments {
		parent, err := l.buildParent(clix.Argument, pb)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", pb.Name, err)
		}
		items = append(items, parent)
	}
	for _, pb := range cb.Envs {
		parent, err := l.buildParent(clix.Env, pb)
		if err != nil {
			return nil, fmt.Errorf("env %q: %w", pb.Name, err)
		}
		items = append(items, parent)
	}
	for _, tb := range cb.Tags {
		children, err := l.buildChildren(tb.Children)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tb.Name, err)
		}
		items = append(items, clix.Tag(tb.Name, clix.Children(children...)))
	}

	return clix.New(root, items...)
}

func (l *Loader) buildParent(construct func(string, ...clix.ParentOpt) *clix.Parent, pb *parentBlock) (*clix.Parent, error) {
	var opts []clix.ParentOpt
	if pb.Type != "" {
		kind, err := clix.ParseKind(pb.Type)
		if err != nil {
			return nil, err
		}
		opts = append(opts, clix.Type(kind))
	}
	if pb.Required {
		opts = append(opts, clix.Required())
	}
	if pb.Default != nil {
		def, err := ctyToGo(*pb.Default)
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		opts = append(opts, clix.Default(def))
	}
	if pb.Short != "" {
		opts = append(opts, clix.Short(pb.Short))
	}
	if pb.Help != "" {
		opts = append(opts, clix.Help(pb.Help))
	}
	if len(pb.Tags) > 0 {
		opts = append(opts, clix.Tags(pb.Tags...))
	}
	if pb.NArgs > 0 {
		opts = append(opts, clix.NArgs(pb.NArgs))
	}
	if pb.Variable != "" {
		opts = append(opts, clix.Variable(pb.Variable))
	}
	if pb.Dotenv != "" {
		opts = append(opts, clix.Dotenv(pb.Dotenv))
	}
	children, err := l.buildChildren(pb.Children)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		opts = append(opts, clix.Children(children...))
	}
	return construct(pb.Name, opts...), nil
}

func (l *Loader) buildChildren(blocks []*childBlock) ([]clix.Child, error) {
	var children []clix.Child
	for _, block := range blocks {
		args, err := childArgs(block.Body)
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", block.Name, err)
		}
		child, err := l.registry.New(block.Name, args)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// childArgs evaluates every remaining attribute of a child block into
// plain Go values for the factory.
func childArgs(body hcl.Body) (registry.Args, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read child arguments: %w", diags)
	}
	args := make(registry.Args, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("argument %q: %w", name, diags)
		}
		converted, err := ctyToGo(value)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		args[name] = converted
	}
	return args, nil
}

// echoRunner is the default run function for unbound commands: it
// prints the processed values in name order.
func echoRunner(ctx *clix.Context, values clix.Values) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ctx.Command.OutOrStdout()
	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%s = %v\n", name, values[name]); err != nil {
			return err
		}
	}
	return nil
}
