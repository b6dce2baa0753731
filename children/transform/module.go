package transform

import (
	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/registry"
)

// Module contributes the transform factories to a child registry.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.Register("add_prefix", func(args registry.Args) (clix.Child, error) {
		return AddPrefix(args.String("prefix", "")), nil
	})
	r.Register("add_suffix", func(args registry.Args) (clix.Child, error) {
		return AddSuffix(args.String("suffix", "")), nil
	})
	r.Register("to_upper", func(registry.Args) (clix.Child, error) {
		return ToUpper(), nil
	})
	r.Register("to_lower", func(registry.Args) (clix.Child, error) {
		return ToLower(), nil
	})
	r.Register("trim", func(args registry.Args) (clix.Child, error) {
		return Trim(args.String("cutset", "")), nil
	})
	r.Register("multiply", func(args registry.Args) (clix.Child, error) {
		return Multiply(args.Float("factor", 1)), nil
	})
	r.Register("to_case", func(args registry.Args) (clix.Child, error) {
		return ToCase(args.String("style", ""))
	})
	r.Register("as_path", func(registry.Args) (clix.Child, error) {
		return AsPath(), nil
	})
}
