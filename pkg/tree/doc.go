// Package tree provides the mutable document model for structured
// configuration text: an ordered tree of sections, directives, comments and
// blank lines that format drivers populate on parse and walk on render.
//
// # Core Types
//
// Node is the single entity of the model. A section node holds an ordered
// child list; directives carry a value and optional attributes; comments and
// blanks are preserved verbatim so a parsed document re-renders faithfully.
// Child order is the textual order of the document.
//
// # Structural Editing
//
// Children are created through their parent section (CreateSection,
// CreateDirective, CreateComment, CreateBlank) or spliced in with Attach at
// an explicit Placement: Top, Bottom, or Before/After an existing sibling.
// Each node carries a stable identity, so position lookups (Index) and
// placement anchors stay correct while names and contents change or collide
// between siblings.
//
// # Lookup
//
// Find, FindAt and Count filter direct children with a Match whose
// zero-valued fields are simply not applied; attribute filters are subset
// matches. SearchPath descends one PathStep per level, ignoring node kind,
// the way deep lookups address nested configuration.
//
// # Usage Example
//
//	root := tree.NewRoot()
//	db, _ := root.CreateSection("DB", nil, tree.Bottom())
//	db.CreateDirective("user", "admin", nil, tree.Bottom())
//
//	n, _ := root.SearchPath(tree.Step("DB"), tree.Step("user"))
//	n.Content = "operator"
//
// The tree performs no locking: callers serialize concurrent mutation.
package tree
