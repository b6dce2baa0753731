package validate

import (
	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/registry"
)

// Module contributes the validate factories to a child registry.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.Register("is_positive", func(registry.Args) (clix.Child, error) {
		return IsPositive(), nil
	})
	r.Register("length", func(args registry.Args) (clix.Child, error) {
		return Length(args.Int("min", 0), args.Int("max", 0)), nil
	})
	r.Register("less_than", func(args registry.Args) (clix.Child, error) {
		return LessThan(args.Float("limit", 0)), nil
	})
	r.Register("matches", func(args registry.Args) (clix.Child, error) {
		return Matches(args.String("pattern", ""))
	})
	r.Register("non_empty", func(registry.Args) (clix.Child, error) {
		return NonEmpty(), nil
	})
	r.Register("require_one", func(args registry.Args) (clix.Child, error) {
		return RequireOne(args.Strings("of")...), nil
	})
}
