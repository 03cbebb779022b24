package tree

import (
	"github.com/joshuapare/confkit/pkg/types"
)

// Map keys marking a wrapped value and its attributes in ToMap output. The
// structural JSON driver uses the same markers on its wire format.
const (
	ContentKey    = "#"
	AttributesKey = "@"
)

// ToMap exports the subtree rooted at n as a nested mapping keyed by node
// name. Directives export their content; sections export the merged map of
// their children; comments and blanks are skipped. When withAttrs is set, a
// node carrying attributes wraps its value as {"#": value, "@": attrs}.
// Duplicate names at one level collapse into an ordered list under the
// shared key: the second occurrence converts the prior value into a
// two-element list, later ones append.
func (n *Node) ToMap(withAttrs bool) map[string]any {
	return map[string]any{n.Name: n.exportValue(withAttrs)}
}

func (n *Node) exportValue(withAttrs bool) any {
	var v any
	switch n.Kind {
	case types.KindDirective:
		v = n.Content
	case types.KindSection:
		m := make(map[string]any)
		for _, c := range n.Children {
			if c.Kind == types.KindComment || c.Kind == types.KindBlank {
				continue
			}
			cv := c.exportValue(withAttrs)
			if prev, ok := m[c.Name]; ok {
				if list, isList := prev.([]any); isList {
					m[c.Name] = append(list, cv)
				} else {
					m[c.Name] = []any{prev, cv}
				}
			} else {
				m[c.Name] = cv
			}
		}
		v = m
	default:
		return nil
	}
	if withAttrs && len(n.Attrs) > 0 {
		v = map[string]any{ContentKey: v, AttributesKey: n.Attrs.Map()}
	}
	return v
}
