package syntax

// Point is a 0-based row/column position in the source.
type Point struct {
	Row    uint32
	Column uint32
}

// Node is one syntax tree node. A node owns its children; there are no
// parent links.
type Node struct {
	Kind      string
	Field     string // name the parent holds this node under, if any
	Named     bool
	Symbol    uint16
	StartByte uint32
	EndByte   uint32
	Start     Point
	End       Point
	Text      string // set on leaves only
	Children  []*Node
}

// IsLeaf reports whether n has no children at all.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is the parsed form of one source document.
type Tree struct {
	Path     string
	Language string
	Root     *Node
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	total := 0
	Walk(t.Root, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Depth returns the depth of the deepest node; a lone root has depth 0.
func (t *Tree) Depth() int {
	deepest := 0
	Walk(t.Root, func(_ *Node, depth int) bool {
		if depth > deepest {
			deepest = depth
		}
		return true
	})
	return deepest
}

// Kinds returns the distinct grammar symbols present in the tree. Symbol 0
// is the end-of-input symbol in every grammar and never names a parsed
// node, so nodes carrying it (synthetic roots) are left out.
func (t *Tree) Kinds() map[uint16]string {
	kinds := make(map[uint16]string)
	Walk(t.Root, func(n *Node, _ int) bool {
		if n.Symbol == 0 {
			return true
		}
		kinds[n.Symbol] = n.Kind
		return true
	})
	return kinds
}
