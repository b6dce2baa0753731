package clix

// executeParent runs one parent's children in declared order, threading
// the (possibly transformed) value through the chain. It pushes a
// {name, tags, value} snapshot on the context trail first, and returns
// the parent's final value.
//
// Children with a Tag slot on a tagged parent run in aggregate mode:
// they receive the mapping of every member parent's value and are
// validation-only. All other children run in single-value mode, each
// receiving the output of the previous one.
func executeParent(p *Parent, ctx *Context) (any, error) {
	pctx := ctx.WithParent(p)
	pctx.pushParent(ParentSnapshot{Name: p.name, Tags: p.tags, Value: p.raw})

	value := p.raw
	for i, child := range p.children {
		cctx := pctx.WithChild(child)

		aggregateMode := p.isTagged() && child.Handlers().Tag != nil
		if p.kind == ParentTag && child.Handlers().Tag == nil {
			return nil, &ParameterError{
				Parent: p.name,
				Child:  child.Name(),
				Err: &InvalidHandlerError{
					Message: "children attached to a tag must implement the Tag handler slot",
					Tip:     "add a Tag handler, or attach the child to a value-bearing parent instead",
				},
			}
		}

		if aggregateMode {
			aggregate := p.aggregateValues(ctx)
			tctx := cctx.WithTagMode()
			if before, ok := child.(BeforeHook); ok {
				if err := before.Before(aggregate, tctx); err != nil {
					return nil, &ParameterError{Parent: p.name, Child: child.Name(), Err: err}
				}
			}
			if _, err := Dispatch(child, aggregate, tctx); err != nil {
				return nil, &ParameterError{Parent: p.name, Child: child.Name(), Err: err}
			}
			if after, ok := child.(AfterHook); ok {
				if err := after.After(aggregate, tctx); err != nil {
					return nil, &ParameterError{Parent: p.name, Child: child.Name(), Err: err}
				}
			}
			// Validation-only: nothing flows back into the chain.
			continue
		}

		if before, ok := child.(BeforeHook); ok {
			if err := before.Before(value, cctx); err != nil {
				return nil, &ParameterError{Parent: p.name, Child: child.Name(), Err: err}
			}
		}
		result, err := Dispatch(child, value, cctx)
		if err != nil {
			return nil, &ParameterError{Parent: p.name, Child: child.Name(), Err: err}
		}
		value = result
		if after, ok := child.(AfterHook); ok {
			if err := after.After(value, cctx); err != nil {
				return nil, &ParameterError{Parent: p.name, Child: child.Name(), Err: err}
			}
		}

		ctx.Logger().Debug("child processed value",
			"parent", p.name, "child", child.Name(), "position", i)
	}

	p.value = value
	p.computed = true
	return value, nil
}

// aggregateValues builds the {parent name: value} mapping dispatched to
// Tag handlers. For a tag it covers the tag's members; for a tagged
// value parent it covers every member of each tag the parent belongs
// to.
func (p *Parent) aggregateValues(ctx *Context) map[string]any {
	aggregate := make(map[string]any)

	collect := func(members []*Parent) {
		for _, member := range members {
			if member.computed {
				aggregate[member.name] = member.value
			} else {
				aggregate[member.name] = member.raw
			}
		}
	}

	if p.kind == ParentTag {
		collect(p.members)
		return aggregate
	}
	for _, tagName := range p.tags {
		if tag, ok := ctx.Tags[tagName]; ok {
			collect(tag.members)
		}
	}
	// The parent itself always participates.
	if p.computed {
		aggregate[p.name] = p.value
	} else {
		aggregate[p.name] = p.raw
	}
	return aggregate
}
