package qabot

import (
	"fmt"
	"strings"
)

// Node is a markup node in a renderable tree. Engines that wrap messages in
// styled structures emit these instead of plain strings; only the leaf text
// matters for history purposes.
type Node struct {
	Text     string
	Children []any
}

// ExtractText flattens a renderable content value into the plain text a user
// would read. It handles strings, numeric leaves, nil, slices and Node
// trees; markup-only structure contributes nothing. The function is total:
// unknown values flatten to the empty string.
func ExtractText(content any) string {
	switch v := content.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".0".
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case Node:
		return extractFromNode(&v)
	case *Node:
		if v == nil {
			return ""
		}
		return extractFromNode(v)
	case []any:
		var b strings.Builder
		for _, child := range v {
			b.WriteString(ExtractText(child))
		}
		return b.String()
	default:
		return ""
	}
}

func extractFromNode(n *Node) string {
	var b strings.Builder
	b.WriteString(n.Text)
	for _, child := range n.Children {
		b.WriteString(ExtractText(child))
	}
	return b.String()
}
