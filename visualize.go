package clix

import (
	"fmt"
	"io"
	"strings"
)

// Visualize writes a tree rendering of the command: each parent with its
// source kind and value kind, children in execution order, and tag
// membership.
func (c *Command) Visualize(w io.Writer) error {
	kind := "command"
	if c.root.group {
		kind = "group"
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", kind, c.root.name); err != nil {
		return err
	}

	nodes := make([]*Parent, 0, len(c.root.parents)+len(c.tags))
	seen := make(map[string]bool)
	for _, p := range c.root.parents {
		nodes = append(nodes, p)
		seen[p.name] = true
	}
	for _, tag := range c.tags {
		if !seen[tag.name] {
			nodes = append(nodes, tag)
		}
	}

	for i, p := range nodes {
		last := i == len(nodes)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", branch, describeParent(p)); err != nil {
			return err
		}
		for j, child := range p.children {
			leaf := "├── "
			if j == len(p.children)-1 {
				leaf = "└── "
			}
			if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, leaf, child.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeParent(p *Parent) string {
	var attrs []string
	if p.kind != ParentTag {
		attrs = append(attrs, p.typ.String())
	}
	if p.required {
		attrs = append(attrs, "required")
	}
	if len(p.tags) > 0 {
		attrs = append(attrs, "tags: "+strings.Join(p.tags, ", "))
	}
	if p.kind == ParentTag && len(p.members) > 0 {
		names := make([]string, len(p.members))
		for i, m := range p.members {
			names[i] = m.name
		}
		attrs = append(attrs, "members: "+strings.Join(names, ", "))
	}
	if len(attrs) == 0 {
		return fmt.Sprintf("%s %s", p.kind, p.name)
	}
	return fmt.Sprintf("%s %s (%s)", p.kind, p.name, strings.Join(attrs, ", "))
}
