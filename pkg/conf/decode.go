package conf

import (
	"github.com/mitchellh/mapstructure"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// DecodeTagName is the struct tag Decode reads for field names.
const DecodeTagName = "conf"

// Decode binds the subtree rooted at n onto target, which must be a
// pointer to a struct or map. Directive content is untyped text, so
// decoding is weakly typed: "5432" fills an int field, "1" and "" fill a
// bool. Field names match child names case-insensitively, or explicitly
// via the `conf` tag. Attributes are not part of the decoded shape.
func Decode(n *tree.Node, target any) error {
	input := n.ToMap(false)[n.Name]
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          DecodeTagName,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return &types.Error{Kind: types.ErrKindUsage, Msg: "bad decode target", Err: err}
	}
	if err := dec.Decode(input); err != nil {
		return &types.Error{Kind: types.ErrKindUsage, Msg: "decode tree into target", Err: err}
	}
	return nil
}

// Decode binds the whole document onto target. See Decode.
func (d *Document) Decode(target any) error {
	return Decode(d.root, target)
}

// DecodeSection binds one subtree of the document onto target. See
// Decode.
func (d *Document) DecodeSection(n *tree.Node, target any) error {
	return Decode(n, target)
}
