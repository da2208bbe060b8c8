package ufdr

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Node is a schema-agnostic XML element. UFDR members carry unconstrained
// per-vendor schemas, so documents are decoded into a generic tree and all
// field discovery happens by name lookup over it.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

func decodeXML(data []byte) (*Node, error) {
	var root Node
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Tag returns the element's local tag name.
func (n *Node) Tag() string {
	return n.XMLName.Local
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == tag {
			return &n.Children[i]
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first direct child with the
// given tag, or "" when the child is absent or empty.
func (n *Node) ChildText(tag string) string {
	if c := n.Child(tag); c != nil {
		return strings.TrimSpace(c.Text)
	}
	return ""
}

// Attr returns the trimmed value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// Iter returns the node and all its descendants, in document order, whose tag
// matches. An empty tag matches every element.
func (n *Node) Iter(tag string) []*Node {
	var out []*Node
	n.walk(func(el *Node) {
		if tag == "" || el.XMLName.Local == tag {
			out = append(out, el)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for i := range n.Children {
		n.Children[i].walk(fn)
	}
}
