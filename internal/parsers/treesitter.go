package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all child nodes with the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// hasChildOfType reports whether node has a direct child with the given type.
func hasChildOfType(node *sitter.Node, nodeType string) bool {
	return findChildByType(node, nodeType) != nil
}

// typeAnnotationText extracts the type text from a type_annotation node,
// skipping the leading ":" token.
func typeAnnotationText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != ":" {
			return extractNodeText(child, source)
		}
	}
	return ""
}

// precedingCommentBlocks collects the documentation-comment blocks attached
// to a declaration: the contiguous run of comment siblings immediately before
// the node, in source order, filtered to /** ... */ blocks.
func precedingCommentBlocks(node *sitter.Node, source []byte) []string {
	var blocks []string
	for prev := node.PrevSibling(); prev != nil && prev.Kind() == "comment"; prev = prev.PrevSibling() {
		text := extractNodeText(prev, source)
		if strings.HasPrefix(text, "/**") {
			// Prepend to keep source order
			blocks = append([]string{text}, blocks...)
		}
	}
	return blocks
}
