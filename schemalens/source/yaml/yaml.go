// Package yaml adapts goccy/go-yaml's AST into a schemalens.TokenSource.
// Grounded on the teacher's own YAML-to-JSON-Schema generator, which walks
// the same AST for the same reason: YAML has no ready-made pull-based
// token stream comparable to encoding/json's Decoder, anchors and aliases
// need resolving before anything downstream can see a value, and tag
// wrapper nodes need unwrapping.
package yaml

import (
	"fmt"
	"math"
	"math/big"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

// Tokens parses input as a single YAML document and returns the token
// sequence for its root value. Aliases are resolved against anchors
// defined anywhere in the same document, matching the teacher's
// buildAnchorMap/resolveAliases pair.
func Tokens(input []byte) ([]schemalens.Token, error) {
	if len(input) == 0 || isBlank(input) {
		return []schemalens.Token{schemalens.NoneToken()}, nil
	}

	file, err := parser.ParseBytes(input, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return []schemalens.Token{schemalens.NoneToken()}, nil
	}

	doc := file.Docs[0]
	anchors := buildAnchorMap(doc.Body)

	var toks []schemalens.Token
	if err := walkNode(&toks, doc.Body, anchors); err != nil {
		return nil, err
	}

	return toks, nil
}

// NewSource parses input and returns a replayable [schemalens.TokenSource]
// over its root value.
func NewSource(input []byte) (*genericvalue.Source, error) {
	toks, err := Tokens(input)
	if err != nil {
		return nil, err
	}

	return genericvalue.NewSource(toks), nil
}

func walkNode(dst *[]schemalens.Token, node ast.Node, anchors map[string]ast.Node) error {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		*dst = append(*dst, schemalens.NoneToken())

		return nil
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return walkMapping(dst, n.Values, anchors)
	case *ast.MappingValueNode:
		return walkMapping(dst, []*ast.MappingValueNode{n}, anchors)
	case *ast.SequenceNode:
		return walkSequence(dst, n, anchors)
	default:
		tok, err := scalarToken(n)
		if err != nil {
			return err
		}

		*dst = append(*dst, tok)

		return nil
	}
}

func walkMapping(dst *[]schemalens.Token, values []*ast.MappingValueNode, anchors map[string]ast.Node) error {
	*dst = append(*dst, schemalens.MapStartToken())

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			if err := walkMergeKey(dst, mvn, anchors); err != nil {
				return err
			}

			continue
		}

		*dst = append(*dst, schemalens.MapKeyToken(mvn.Key.String()))

		if err := walkNode(dst, mvn.Value, anchors); err != nil {
			return err
		}
	}

	*dst = append(*dst, schemalens.MapEndToken())

	return nil
}

// walkMergeKey splices a YAML merge key's (<<) referenced mapping fields
// into the enclosing mapping's own token stream, as additional MapKey/value
// pairs. A key that is both merged in and set explicitly is emitted twice;
// the engine's duplicate tracking applies across all MapKey events at this
// level regardless of where they came from, so both values are folded into
// one field with may_be_duplicate set. The explicit value does not replace
// the merged one.
func walkMergeKey(dst *[]schemalens.Token, mvn *ast.MappingValueNode, anchors map[string]ast.Node) error {
	mergeValue := resolveAliases(mvn.Value, anchors)
	mergeValue = unwrapNode(mergeValue)

	switch mv := mergeValue.(type) {
	case *ast.MappingNode:
		return walkMergeValues(dst, mv.Values, anchors)
	case *ast.SequenceNode:
		for _, seqVal := range mv.Values {
			resolved := resolveAliases(seqVal, anchors)
			resolved = unwrapNode(resolved)

			mappingNode, ok := resolved.(*ast.MappingNode)
			if !ok {
				continue
			}

			if err := walkMergeValues(dst, mappingNode.Values, anchors); err != nil {
				return err
			}
		}
	}

	return nil
}

func walkMergeValues(dst *[]schemalens.Token, values []*ast.MappingValueNode, anchors map[string]ast.Node) error {
	for _, mvn := range values {
		*dst = append(*dst, schemalens.MapKeyToken(mvn.Key.String()))

		if err := walkNode(dst, mvn.Value, anchors); err != nil {
			return err
		}
	}

	return nil
}

func walkSequence(dst *[]schemalens.Token, seq *ast.SequenceNode, anchors map[string]ast.Node) error {
	*dst = append(*dst, schemalens.SeqStartToken())

	for _, v := range seq.Values {
		if err := walkNode(dst, v, anchors); err != nil {
			return err
		}
	}

	*dst = append(*dst, schemalens.SeqEndToken())

	return nil
}

// scalarToken renders an already-unwrapped scalar node, reading the same
// node kinds the teacher's own inferType switches on, but the value itself
// rather than just its type tag.
func scalarToken(node ast.Node) (schemalens.Token, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return schemalens.NoneToken(), nil
	case *ast.BoolNode:
		return schemalens.BoolToken(n.Value), nil
	case *ast.IntegerNode:
		return integerScalarToken(n.Value)
	case *ast.FloatNode:
		return schemalens.FloatToken(n.Value), nil
	case *ast.InfinityNode:
		return schemalens.FloatToken(n.Value), nil
	case *ast.NanNode:
		return schemalens.FloatToken(math.NaN()), nil
	case *ast.StringNode:
		return schemalens.StringToken(n.Value), nil
	case *ast.LiteralNode:
		if n.Value == nil {
			return schemalens.StringToken(""), nil
		}

		return schemalens.StringToken(n.Value.Value), nil
	default:
		return schemalens.Token{}, fmt.Errorf("%w: unhandled YAML node %T", schemalens.ErrUnsupportedKind, node)
	}
}

func integerScalarToken(v any) (schemalens.Token, error) {
	switch n := v.(type) {
	case int64:
		return schemalens.Int64Token(n), nil
	case int:
		return schemalens.Int64Token(int64(n)), nil
	case uint64:
		return schemalens.Uint64Token(n), nil
	case uint:
		return schemalens.Uint64Token(uint64(n)), nil
	case *big.Int:
		return schemalens.BigUintToken(n)
	default:
		return schemalens.Token{}, fmt.Errorf("%w: unhandled YAML integer representation %T", schemalens.ErrUnsupportedKind, v)
	}
}

// buildAnchorMap walks the AST and collects all anchor definitions,
// matching the teacher's own anchorVisitor.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements [ast.Visitor].
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

// resolveAliases resolves alias nodes using the anchor map. An
// unresolvable alias is treated as null.
func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
