package tree

// placeMode selects where Attach splices a node into the child list.
type placeMode uint8

const (
	placeBottom placeMode = iota // zero value: append at the end
	placeTop
	placeBefore
	placeAfter
)

// Placement names a position in a section's child list. The zero value is
// Bottom.
type Placement struct {
	mode   placeMode
	target *Node
}

// Top places the node first in the child list.
func Top() Placement { return Placement{mode: placeTop} }

// Bottom places the node last in the child list.
func Bottom() Placement { return Placement{} }

// Before places the node immediately before target, which must currently be
// a child of the section being attached to.
func Before(target *Node) Placement { return Placement{mode: placeBefore, target: target} }

// After places the node immediately after target, which must currently be a
// child of the section being attached to.
func After(target *Node) Placement { return Placement{mode: placeAfter, target: target} }
