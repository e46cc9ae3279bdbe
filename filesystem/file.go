// Package filesystem models the ISO7816-4 smart card file hierarchy: the MF
// (master file / root), DFs (dedicated files, i.e. directories), ADFs
// (application dedicated files) and the EF (elementary file) variants.
//
// The tree represents the specification of a card's filesystem. It is built
// once at startup and immutable in structure afterwards; only the content on
// the physical card changes.
package filesystem

import "strings"

// Names and fids that may only ever identify the MF itself. Checked on every
// insertion.
var (
	reservedNames = map[string]struct{}{"..": {}, ".": {}, "/": {}, "MF": {}}
	reservedFIDs  = map[string]struct{}{"3f00": {}}
)

// File is the common interface of every node in the tree. The set of
// implementations is closed: MF, DF, ADF and the EF variants in this
// package.
type File interface {
	// FID returns the file identifier in canonical lower-case hex form.
	// Empty only for an ADF addressed purely by AID.
	FID() string

	// SFID returns the short file identifier, 0 when absent.
	SFID() int

	// Name returns the human readable name ("EF.IMSI"), empty when absent.
	Name() string

	// Description returns the free-form description, empty when absent.
	Description() string

	// Parent returns the owning directory. The MF is its own parent; a
	// detached node returns nil.
	Parent() Dir

	pathElement(preferName bool) string
	setParent(Dir)
}

// Dir is implemented by the container nodes (MF, DF, ADF).
type Dir interface {
	File

	// Children returns the directory's children in insertion order.
	Children() []File

	// Child looks up a direct child by fid.
	Child(fid string) (File, bool)

	// ChildByName looks up a direct child by name.
	ChildByName(name string) (File, bool)

	// ChildBySFID looks up a direct child by short file identifier.
	ChildBySFID(sfid int) (File, bool)
}

// Info carries the identity attributes shared by every node type. FID is
// normalized to lower case on construction.
type Info struct {
	FID         string
	SFID        int
	Name        string
	Description string
}

// node holds the attributes common to all tree entries. Concrete types embed
// it; it is never used on its own.
type node struct {
	fid    string
	sfid   int
	name   string
	desc   string
	parent Dir
}

func newNode(info Info) node {
	return node{
		fid:  strings.ToLower(info.FID),
		sfid: info.SFID,
		name: info.Name,
		desc: info.Description,
	}
}

func (n *node) FID() string         { return n.fid }
func (n *node) SFID() int           { return n.sfid }
func (n *node) Name() string        { return n.name }
func (n *node) Description() string { return n.desc }
func (n *node) Parent() Dir         { return n.parent }
func (n *node) setParent(d Dir)     { n.parent = d }

func (n *node) pathElement(preferName bool) string {
	if preferName && n.name != "" {
		return n.name
	}
	return n.fid
}

// isRoot reports whether f terminates upward traversal, i.e. is its own
// parent.
func isRoot(f File) bool {
	p := f.Parent()
	return p != nil && File(p) == f
}

// Root walks parent links up to the MF. The second return is false for a
// detached node, which cannot occur in a well-formed tree.
func Root(f File) (*MF, bool) {
	for n := f; ; {
		p := n.Parent()
		if p == nil {
			return nil, false
		}
		if File(p) == n {
			mf, ok := n.(*MF)
			return mf, ok
		}
		n = p
	}
}

// Path returns the fully qualified path of f as a sequence of elements from
// the MF down. Each element is the node's name if preferName is set and a
// name exists, otherwise its fid (its AID for an ADF without fid).
func Path(f File, preferName bool) []string {
	var rev []string
	for n := f; ; {
		rev = append(rev, n.pathElement(preferName))
		p := n.Parent()
		if p == nil || File(p) == n {
			break
		}
		n = p
	}
	elems := make([]string, len(rev))
	for i, e := range rev {
		elems[len(rev)-1-i] = e
	}
	return elems
}

// PathString renders Path joined with "/".
func PathString(f File, preferName bool) string {
	return strings.Join(Path(f, preferName), "/")
}
