package tree

import (
	"github.com/joshuapare/confkit/pkg/types"
)

// Match filters direct children. Zero-valued fields are not applied: KindAny
// matches every kind, an empty Name or Content matches regardless, and an
// empty Attrs imposes no requirement. A non-empty Attrs is a subset match,
// so every listed pair must be present and equal on the child while extra
// attributes on the child are allowed.
type Match struct {
	Kind    types.ItemKind
	Name    string
	Content string
	Attrs   Attrs
}

func (m Match) accepts(n *Node) bool {
	if m.Kind != types.KindAny && n.Kind != m.Kind {
		return false
	}
	if m.Name != "" && n.Name != m.Name {
		return false
	}
	if m.Content != "" && n.Content != m.Content {
		return false
	}
	if len(m.Attrs) > 0 && !n.Attrs.Contains(m.Attrs) {
		return false
	}
	return true
}

// Count reports how many direct children match m. The zero Match counts all
// children. Fails with ErrNotSection on non-section nodes.
func (n *Node) Count(m Match) (int, error) {
	if n.Kind != types.KindSection {
		return 0, types.ErrNotSection
	}
	count := 0
	for _, c := range n.Children {
		if m.accepts(c) {
			count++
		}
	}
	return count, nil
}

// FindAll returns every direct child matching m, in child order. Fails with
// ErrNotSection on non-section nodes.
func (n *Node) FindAll(m Match) ([]*Node, error) {
	if n.Kind != types.KindSection {
		return nil, types.ErrNotSection
	}
	var out []*Node
	for _, c := range n.Children {
		if m.accepts(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Find returns the last direct child matching m, or nil when none does.
func (n *Node) Find(m Match) (*Node, error) {
	return n.FindAt(m, -1)
}

// FindAt returns the index-th match of m among the direct children, counting
// from zero in child order. A negative index selects the last match. Returns
// nil without error when nothing matches or index is out of range.
func (n *Node) FindAt(m Match, index int) (*Node, error) {
	matches, err := n.FindAll(m)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if index < 0 {
		return matches[len(matches)-1], nil
	}
	if index >= len(matches) {
		return nil, nil
	}
	return matches[index], nil
}

// PathStep is one hop of a SearchPath lookup: a child name plus an optional
// attribute filter for that hop.
type PathStep struct {
	Name  string
	Attrs Attrs
}

// Step builds a hop matching on name alone.
func Step(name string) PathStep { return PathStep{Name: name} }

// StepAttrs builds a hop matching on name and an attribute subset.
func StepAttrs(name string, attrs Attrs) PathStep {
	return PathStep{Name: name, Attrs: attrs}
}

// SearchPath descends one hop per step, matching children by name and
// optional attributes while ignoring their kind, and returns the node the
// final step lands on. It returns nil when any hop has no match, and
// ErrNotSection when a remaining hop is applied to a non-section node.
func (n *Node) SearchPath(steps ...PathStep) (*Node, error) {
	cur := n
	for _, s := range steps {
		if cur.Kind != types.KindSection {
			return nil, types.ErrNotSection
		}
		next, err := cur.Find(Match{Name: s.Name, Attrs: s.Attrs})
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		cur = next
	}
	return cur, nil
}
