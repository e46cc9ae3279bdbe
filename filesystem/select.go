package filesystem

// addSelf inserts f under its own fid and name plus an optional alias.
func addSelf(sels map[string]File, f File, alias string) {
	if alias != "" {
		sels[alias] = f
	}
	if fid := f.FID(); fid != "" {
		sels[fid] = f
	}
	if name := f.Name(); name != "" {
		sels[name] = f
	}
}

// Reachable computes every identifier that can be navigated to from f,
// mirroring what a card accepts as a SELECT target from its current file:
//
//   - f itself under ".", its fid and its name
//   - f's parent under "..", its fid and its name (a self-loop on the MF)
//   - every application of the tree's MF under AID and name, from anywhere
//   - for a directory, every child under fid and name
//   - for an EF, every sibling under its name
//
// Later sources overwrite earlier ones on key collision; reserved-name
// rejection at insertion keeps conforming trees collision-free for the "."
// and ".." aliases.
func Reachable(f File) map[string]File {
	sels := map[string]File{}
	addSelf(sels, f, ".")
	if p := f.Parent(); p != nil {
		addSelf(sels, p, "..")
	}
	if mf, ok := Root(f); ok {
		for _, app := range mf.Applications() {
			sels[app.AID()] = app
			if name := app.Name(); name != "" {
				sels[name] = app
			}
		}
	}
	switch n := f.(type) {
	case Dir:
		for _, c := range n.Children() {
			if fid := c.FID(); fid != "" {
				sels[fid] = c
			}
			if name := c.Name(); name != "" {
				sels[name] = c
			}
		}
	default:
		// EF: sibling files of the containing directory, by name.
		if p := f.Parent(); p != nil {
			for _, sib := range p.Children() {
				if sib == f {
					continue
				}
				if name := sib.Name(); name != "" {
					sels[name] = sib
				}
			}
		}
	}
	return sels
}

// ReachableNames returns the keys of [Reachable] for completion rendering.
func ReachableNames(f File) []string {
	sels := Reachable(f)
	names := make([]string, 0, len(sels))
	for name := range sels {
		names = append(names, name)
	}
	return names
}
