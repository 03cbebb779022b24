package tree

import (
	"github.com/google/uuid"

	"github.com/joshuapare/confkit/pkg/types"
)

// RootName is the name every tree root carries.
const RootName = "root"

// Node represents one item of a configuration document.
// Nodes are created through their parent section and keep their position in
// the parent's child list until removed or explicitly re-placed.
type Node struct {
	// Identity
	Kind types.ItemKind
	id   uuid.UUID // stable for the node's lifetime, independent of the fields below

	// Payload
	Name    string // empty for comments and blanks; siblings may share a name
	Content string // directive value or comment text
	Attrs   Attrs  // ordered attributes; sections and directives only

	// Tree structure
	Parent   *Node // maintained by Attach/Remove; nil only for the root
	Children []*Node
}

// errCycle guards the acyclicity invariant when Attach moves nodes around.
var errCycle = &types.Error{Kind: types.ErrKindUsage, Msg: "cannot attach a node beneath itself"}

// NewRoot creates an empty document tree: a section named "root" with no
// parent. It is the only node whose Parent stays nil.
func NewRoot() *Node {
	n := newNode(types.KindSection, RootName, "", nil)
	n.Children = make([]*Node, 0)
	return n
}

func newNode(kind types.ItemKind, name, content string, attrs Attrs) *Node {
	return &Node{
		Kind:    kind,
		id:      uuid.New(),
		Name:    name,
		Content: content,
		Attrs:   attrs,
	}
}

// ID returns the node's opaque identity. Two nodes never share an identity,
// even when every visible field collides.
func (n *Node) ID() uuid.UUID { return n.id }

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// CreateSection builds a new section and attaches it to n at the given
// placement. attrs may be nil.
func (n *Node) CreateSection(name string, attrs Attrs, at Placement) (*Node, error) {
	child := newNode(types.KindSection, name, "", attrs)
	child.Children = make([]*Node, 0)
	if err := n.Attach(child, at); err != nil {
		return nil, err
	}
	return child, nil
}

// CreateDirective builds a new name/value directive and attaches it to n at
// the given placement. attrs may be nil.
func (n *Node) CreateDirective(name, content string, attrs Attrs, at Placement) (*Node, error) {
	child := newNode(types.KindDirective, name, content, attrs)
	if err := n.Attach(child, at); err != nil {
		return nil, err
	}
	return child, nil
}

// CreateComment builds a comment node holding text (without any marker) and
// attaches it to n at the given placement.
func (n *Node) CreateComment(text string, at Placement) (*Node, error) {
	child := newNode(types.KindComment, "", text, nil)
	if err := n.Attach(child, at); err != nil {
		return nil, err
	}
	return child, nil
}

// CreateBlank builds a blank-line node and attaches it to n at the given
// placement.
func (n *Node) CreateBlank(at Placement) (*Node, error) {
	child := newNode(types.KindBlank, "", "", nil)
	if err := n.Attach(child, at); err != nil {
		return nil, err
	}
	return child, nil
}

// Attach splices child into n's child list at the given placement and sets
// child.Parent = n. A child that is already attached somewhere (including
// under n itself) is spliced out of its old slot first, so Attach doubles as
// the reorder operation. Fails with ErrNotSection when n cannot hold
// children and with ErrNotChild when a Before/After target is not currently
// a child of n. A failed Attach leaves both trees untouched.
func (n *Node) Attach(child *Node, at Placement) error {
	if n.Kind != types.KindSection {
		return types.ErrNotSection
	}
	for p := n; p != nil; p = p.Parent {
		if p.id == child.id {
			return errCycle
		}
	}

	// Resolve the insertion point before any mutation so a bad placement
	// cannot strand the child outside its old parent.
	idx := len(n.Children)
	switch at.mode {
	case placeTop:
		idx = 0
	case placeBefore, placeAfter:
		ti := -1
		if at.target != nil {
			for i, c := range n.Children {
				if c.id == at.target.id {
					ti = i
					break
				}
			}
		}
		if ti < 0 {
			return types.ErrNotChild
		}
		idx = ti
		if at.mode == placeAfter {
			idx = ti + 1
		}
	}

	if child.Parent != nil {
		// On a same-parent move the detach shifts every later slot left
		// by one, the resolved insertion point included.
		if child.Parent == n && child.Index() < idx {
			idx--
		}
		child.detach()
	}

	n.Children = append(n.Children, nil)
	copy(n.Children[idx+1:], n.Children[idx:])
	n.Children[idx] = child
	child.Parent = n
	return nil
}

// Index returns the node's position in its parent's child list, located by
// identity so sibling name collisions cannot misreport it. The root has no
// parent and reports -1.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c.id == n.id {
			return i
		}
	}
	return -1
}

// Remove splices n out of its parent's child list. The former siblings keep
// their relative order. Fails with ErrRemoveRoot on the root.
func (n *Node) Remove() error {
	if n.Parent == nil {
		return types.ErrRemoveRoot
	}
	n.detach()
	return nil
}

// detach splices n out of its current parent, if any.
func (n *Node) detach() {
	p := n.Parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c.id == n.id {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// SetDirective updates the last directive named name, or creates one at the
// bottom of the section when none exists. The found/not-found decision is an
// explicit branch, never an error round-trip.
func (n *Node) SetDirective(name, content string) (*Node, error) {
	d, err := n.Find(Match{Kind: types.KindDirective, Name: name})
	if err != nil {
		return nil, err
	}
	if d != nil {
		d.Content = content
		return d, nil
	}
	return n.CreateDirective(name, content, nil, Bottom())
}

// SetAttr sets or updates one attribute in place, keeping its original
// position when the key already exists.
func (n *Node) SetAttr(key, value string) { n.Attrs.Set(key, value) }

// Attr returns the value of one attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) { return n.Attrs.Get(key) }
