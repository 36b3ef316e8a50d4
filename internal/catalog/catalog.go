package catalog

// Catalog is an immutable snapshot of command and selector-argument
// definitions. A project change replaces the whole snapshot instead of
// mutating it.
type Catalog struct {
	commands          []CommandVariant
	subcommands       map[string][]CommandVariant
	selectorArguments []SelectorArgumentDef
}

// New builds a catalog from already decoded definitions. The inputs are
// copied so later changes by the caller do not leak into the snapshot.
func New(commands []CommandVariant, subcommands []SubcommandGroup, selectorArguments []SelectorArgumentDef) *Catalog {
	c := &Catalog{
		commands:          make([]CommandVariant, 0, len(commands)),
		subcommands:       make(map[string][]CommandVariant, len(subcommands)),
		selectorArguments: make([]SelectorArgumentDef, 0, len(selectorArguments)),
	}

	for _, cmd := range commands {
		c.commands = append(c.commands, cmd.Clone())
	}

	for _, group := range subcommands {
		for _, sub := range group.Commands {
			c.subcommands[group.CommandName] = append(c.subcommands[group.CommandName], sub.Clone())
		}
	}

	for _, def := range selectorArguments {
		def.Data = def.Data.clone()
		c.selectorArguments = append(c.selectorArguments, def)
	}

	return c
}

// ListCommands returns every command variant, overloads included.
// The returned slice must be treated as read-only.
func (c *Catalog) ListCommands() []CommandVariant {
	return c.commands
}

// ListSelectorArguments returns every selector argument definition
func (c *Catalog) ListSelectorArguments() []SelectorArgumentDef {
	return c.selectorArguments
}

// ListSubcommands returns the subcommands of the named parent command
func (c *Catalog) ListSubcommands(name string) []CommandVariant {
	return c.subcommands[name]
}

// CommandNames returns the distinct command names in catalog order
func (c *Catalog) CommandNames() []string {
	seen := make(map[string]bool, len(c.commands))
	names := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		if seen[cmd.Name] {
			continue
		}
		seen[cmd.Name] = true
		names = append(names, cmd.Name)
	}
	return names
}

// SelectorArgumentNames returns the distinct selector argument names in catalog order
func (c *Catalog) SelectorArgumentNames() []string {
	seen := make(map[string]bool, len(c.selectorArguments))
	names := make([]string, 0, len(c.selectorArguments))
	for _, def := range c.selectorArguments {
		if seen[def.Name] {
			continue
		}
		seen[def.Name] = true
		names = append(names, def.Name)
	}
	return names
}

// Variants returns the overloads registered under name
func (c *Catalog) Variants(name string) []CommandVariant {
	var variants []CommandVariant
	for _, cmd := range c.commands {
		if cmd.Name == name {
			variants = append(variants, cmd)
		}
	}
	return variants
}
