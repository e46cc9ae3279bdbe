package filesystem

import "fmt"

// DF is a dedicated file, the card's notion of a sub-directory. It owns its
// children, keyed by fid and ordered by insertion.
type DF struct {
	node
	// self is the outermost value embedding this DF (the MF or ADF when
	// wrapped), so children get the right parent identity.
	self     Dir
	order    []string
	children map[string]File
}

// NewDF creates a detached DF. Attach it with [DF.Add] on its parent.
func NewDF(info Info) (*DF, error) {
	if info.FID == "" {
		return nil, fmt.Errorf("DF %q: %w", info.Name, ErrMissingFID)
	}
	d := &DF{node: newNode(info), children: map[string]File{}}
	d.self = d
	return d, nil
}

// Add inserts children into the directory, validating each against its new
// siblings: fid, name and sfid must all be unique, and reserved names/fids
// are rejected. Children are attached in argument order; the first failure
// stops the insertion.
func (d *DF) Add(children ...File) error {
	for _, c := range children {
		if err := d.add(c, false); err != nil {
			return err
		}
	}
	return nil
}

// AddIgnoreExisting behaves like [DF.Add] but silently skips any child whose
// fid or name is already taken, leaving the tree unchanged for that child.
// Duplicate sfids still fail.
func (d *DF) AddIgnoreExisting(children ...File) error {
	for _, c := range children {
		if err := d.add(c, true); err != nil {
			return err
		}
	}
	return nil
}

func (d *DF) add(child File, ignoreExisting bool) error {
	fid := child.FID()
	if fid == "" {
		return fmt.Errorf("add %q to %s: %w", child.Name(), d.fid, ErrMissingFID)
	}
	if _, ok := reservedNames[child.Name()]; ok {
		return fmt.Errorf("add %q to %s: %w", child.Name(), d.fid, ErrReservedName)
	}
	if _, ok := reservedFIDs[fid]; ok {
		return fmt.Errorf("add %s to %s: %w", fid, d.fid, ErrReservedFID)
	}
	if _, ok := d.children[fid]; ok {
		if ignoreExisting {
			return nil
		}
		return fmt.Errorf("add %s to %s: %w", fid, d.fid, ErrDuplicateFID)
	}
	if sfid := child.SFID(); sfid != 0 {
		if _, ok := d.ChildBySFID(sfid); ok {
			return fmt.Errorf("add %s to %s: sfid %d: %w", fid, d.fid, sfid, ErrDuplicateSFID)
		}
	}
	if name := child.Name(); name != "" {
		if _, ok := d.ChildByName(name); ok {
			if ignoreExisting {
				return nil
			}
			return fmt.Errorf("add %s to %s: name %q: %w", fid, d.fid, name, ErrDuplicateName)
		}
	}
	d.order = append(d.order, fid)
	d.children[fid] = child
	child.setParent(d.self)
	return nil
}

// Children returns the direct children in insertion order.
func (d *DF) Children() []File {
	out := make([]File, 0, len(d.order))
	for _, fid := range d.order {
		out = append(out, d.children[fid])
	}
	return out
}

// Child looks up a direct child by fid.
func (d *DF) Child(fid string) (File, bool) {
	c, ok := d.children[fid]
	return c, ok
}

// ChildByName looks up a direct child by name.
func (d *DF) ChildByName(name string) (File, bool) {
	if name == "" {
		return nil, false
	}
	for _, fid := range d.order {
		if c := d.children[fid]; c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ChildBySFID looks up a direct child by short file identifier.
func (d *DF) ChildBySFID(sfid int) (File, bool) {
	if sfid == 0 {
		return nil, false
	}
	for _, fid := range d.order {
		if c := d.children[fid]; c.SFID() == sfid {
			return c, true
		}
	}
	return nil, false
}

// MF is the master file, the root of the tree. It is its own parent, which
// terminates upward traversal, and additionally owns the registry of
// applications addressable by AID from anywhere in the tree.
type MF struct {
	DF
	appOrder     []string
	applications map[string]*ADF
}

// NewMF creates a master file with the well-known fid 3f00 and name MF.
func NewMF() *MF {
	mf := &MF{
		DF: DF{
			node:     newNode(Info{FID: "3f00", Name: "MF", Description: "Master File (directory root)"}),
			children: map[string]File{},
		},
		applications: map[string]*ADF{},
	}
	mf.self = mf
	mf.setParent(mf)
	return mf
}

// AddApplication registers an ADF in the MF's application registry, keyed by
// AID. An ADF that also carries a fid additionally becomes a regular child,
// subject to the usual sibling validation; one without a fid is reachable by
// AID (or name) only.
func (m *MF) AddApplication(app *ADF) error {
	if app.aid == "" {
		return fmt.Errorf("add application %q: empty aid", app.Name())
	}
	if _, ok := m.applications[app.aid]; ok {
		return fmt.Errorf("add application %s: %w", app.aid, ErrDuplicateAID)
	}
	if app.FID() != "" {
		if err := m.add(app, false); err != nil {
			return err
		}
	} else {
		// No fid means no m.add, so the reserved-name check runs here.
		if _, ok := reservedNames[app.Name()]; ok {
			return fmt.Errorf("add application %s: name %q: %w", app.aid, app.Name(), ErrReservedName)
		}
		app.setParent(m)
	}
	m.appOrder = append(m.appOrder, app.aid)
	m.applications[app.aid] = app
	return nil
}

// Applications returns the registered ADFs in registration order.
func (m *MF) Applications() []*ADF {
	out := make([]*ADF, 0, len(m.appOrder))
	for _, aid := range m.appOrder {
		out = append(out, m.applications[aid])
	}
	return out
}

// Application looks up an ADF by AID.
func (m *MF) Application(aid string) (*ADF, bool) {
	a, ok := m.applications[aid]
	return a, ok
}

// ADF is an application dedicated file: a directory that is additionally
// addressable by its application identifier. Unlike other nodes it may have
// no fid at all.
type ADF struct {
	DF
	aid string
}

// NewADF creates a detached ADF. Register it with [MF.AddApplication].
// Info.FID may be empty.
func NewADF(aid string, info Info) (*ADF, error) {
	if aid == "" {
		return nil, fmt.Errorf("ADF %q: empty aid", info.Name)
	}
	a := &ADF{
		DF:  DF{node: newNode(info), children: map[string]File{}},
		aid: aid,
	}
	a.self = a
	return a, nil
}

// AID returns the application identifier.
func (a *ADF) AID() string { return a.aid }

func (a *ADF) pathElement(preferName bool) string {
	if preferName && a.name != "" {
		return a.name
	}
	if a.fid != "" {
		return a.fid
	}
	return a.aid
}
