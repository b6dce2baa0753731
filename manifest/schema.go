// Package manifest loads command trees from declarative HCL files. A
// manifest describes commands, their inputs and the named children
// attached to each input; child names resolve against a registry.
package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// manifestFile is the top-level structure of one manifest for
// decoding.
type manifestFile struct {
	Commands []*commandBlock `hcl:"command,block"`
	Groups   []*groupBlock   `hcl:"group,block"`
}

// commandBlock is a `command "name" { ... }` block.
type commandBlock struct {
	Name      string         `hcl:"name,label"`
	Summary   string         `hcl:"summary,optional"`
	Debug     bool           `hcl:"debug,optional"`
	Options   []*parentBlock `hcl:"option,block"`
	Arguments []*parentBlock `hcl:"argument,block"`
	Envs      []*parentBlock `hcl:"env,block"`
	Tags      []*tagBlock    `hcl:"tag,block"`
}

// groupBlock is a `group "name" { ... }` block nesting commands.
type groupBlock struct {
	Name     string          `hcl:"name,label"`
	Summary  string          `hcl:"summary,optional"`
	Commands []*commandBlock `hcl:"command,block"`
}

// parentBlock is an `option`, `argument` or `env` block. Which fields
// are meaningful depends on the block type; the loader ignores the
// rest.
type parentBlock struct {
	Name     string        `hcl:"name,label"`
	Type     string        `hcl:"type,optional"`
	Required bool          `hcl:"required,optional"`
	Default  *cty.Value    `hcl:"default,optional"`
	Short    string        `hcl:"short,optional"`
	Help     string        `hcl:"help,optional"`
	Tags     []string      `hcl:"tags,optional"`
	NArgs    int           `hcl:"nargs,optional"`
	Variable string        `hcl:"variable,optional"`
	Dotenv   string        `hcl:"dotenv,optional"`
	Children []*childBlock `hcl:"child,block"`
}

// tagBlock declares a tag aggregator with its own children.
type tagBlock struct {
	Name     string        `hcl:"name,label"`
	Children []*childBlock `hcl:"child,block"`
}

// childBlock references a registered child factory by name. All
// remaining attributes become the factory's arguments.
type childBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
