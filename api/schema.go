package api

import "fmt"

// DocumentVersion identifies the JSON dump layout.
const DocumentVersion = "astdump/v1"

// Document is the JSON form of one rendered syntax tree.
type Document struct {
	// Version of the dump layout.
	Version string `json:"version"`
	// Path of the source document the tree was parsed from.
	Path string `json:"path"`
	// Language is the grammar name used to parse the document.
	Language string `json:"language"`
	// Root node of the tree.
	Root *Node `json:"root"`
}

// Node is one syntax tree node.
type Node struct {
	Kind      string   `json:"kind"`
	Field     string   `json:"field,omitempty"`
	Named     bool     `json:"named"`
	Symbol    uint16   `json:"symbol"`
	StartByte uint32   `json:"start_byte"`
	EndByte   uint32   `json:"end_byte"`
	Start     Position `json:"start"`
	End       Position `json:"end"`
	// Text is set on leaves only.
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Position is a 0-based row/column pair.
type Position struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

// Value returns d as generic data (maps, slices, scalars) for encoders and
// JSONPath evaluation.
func (d *Document) Value() map[string]any {
	v := map[string]any{
		"version":  d.Version,
		"path":     d.Path,
		"language": d.Language,
	}
	if d.Root != nil {
		v["root"] = d.Root.Value()
	}
	return v
}

// Value returns n as generic data. Keys mirror the json tags.
func (n *Node) Value() map[string]any {
	v := map[string]any{
		"kind":       n.Kind,
		"named":      n.Named,
		"symbol":     int64(n.Symbol),
		"start_byte": int64(n.StartByte),
		"end_byte":   int64(n.EndByte),
		"start":      n.Start.value(),
		"end":        n.End.value(),
	}
	if n.Field != "" {
		v["field"] = n.Field
	}
	if n.Text != "" {
		v["text"] = n.Text
	}
	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.Value()
		}
		v["children"] = children
	}
	return v
}

func (p Position) value() map[string]any {
	return map[string]any{"row": int64(p.Row), "column": int64(p.Column)}
}

// NodeFromValue rebuilds a Node from the generic form produced by Value.
func NodeFromValue(v any) (*Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("node must be an object, got %T", v)
	}
	kind, ok := m["kind"].(string)
	if !ok || kind == "" {
		return nil, fmt.Errorf("node has no kind")
	}

	n := &Node{Kind: kind}
	n.Field, _ = m["field"].(string)
	n.Text, _ = m["text"].(string)
	n.Named, _ = m["named"].(bool)
	n.Symbol = uint16(toUint(m["symbol"]))
	n.StartByte = uint32(toUint(m["start_byte"]))
	n.EndByte = uint32(toUint(m["end_byte"]))
	n.Start = positionFromValue(m["start"])
	n.End = positionFromValue(m["end"])

	if raw, ok := m["children"].([]any); ok {
		n.Children = make([]*Node, 0, len(raw))
		for i, c := range raw {
			child, err := NodeFromValue(c)
			if err != nil {
				return nil, fmt.Errorf("%s child %d: %w", kind, i, err)
			}
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

func positionFromValue(v any) Position {
	m, _ := v.(map[string]any)
	return Position{Row: uint32(toUint(m["row"])), Column: uint32(toUint(m["column"]))}
}

func toUint(v any) uint64 {
	switch x := v.(type) {
	case int64:
		if x > 0 {
			return uint64(x)
		}
	case int:
		if x > 0 {
			return uint64(x)
		}
	case uint64:
		return x
	case float64:
		if x > 0 {
			return uint64(x)
		}
	}
	return 0
}
