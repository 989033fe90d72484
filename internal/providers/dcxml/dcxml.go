// Package dcxml parses the Dublin-Core-family XML returned by the
// government search endpoints. Production endpoints answer under
// namespace combinations that are not fully known in advance, so every
// lookup resolves by qualified name first and falls back to the bare
// local name when no qualified match exists.
package dcxml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Node is one element of a parsed XML document.
type Node struct {
	// XMLName is the qualified element name.
	XMLName xml.Name

	// Attrs are the element attributes.
	Attrs []xml.Attr

	// Children are the child elements in document order.
	Children []*Node

	// Text is the concatenated character data directly inside the
	// element, trimmed.
	Text string
}

// Parse reads an XML document into a Node tree.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	// Government endpoints occasionally declare ISO-8859-1; the bodies
	// are ASCII-safe, so read them as-is.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{XMLName: t.Name, Attrs: t.Attr}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Text = strings.TrimSpace(top.Text)
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// Find returns the first descendant matching the qualified name, or,
// when no qualified match exists anywhere in the subtree, the first
// descendant matching the local name alone. Returns nil when neither
// matches.
func (n *Node) Find(space, local string) *Node {
	if hit := n.findQualified(space, local); hit != nil {
		return hit
	}
	return n.findLocal(local)
}

// FindAll returns every descendant matching the qualified name, or,
// when there are none, every descendant matching the local name alone.
func (n *Node) FindAll(space, local string) []*Node {
	var qualified []*Node
	n.walk(func(c *Node) {
		if c.XMLName.Space == space && c.XMLName.Local == local {
			qualified = append(qualified, c)
		}
	})
	if len(qualified) > 0 {
		return qualified
	}

	var byLocal []*Node
	n.walk(func(c *Node) {
		if c.XMLName.Local == local {
			byLocal = append(byLocal, c)
		}
	})
	return byLocal
}

// Value returns the trimmed text of the first matching descendant,
// resolved with the same qualified-first, local-name-fallback rule.
func (n *Node) Value(space, local string) string {
	if hit := n.Find(space, local); hit != nil {
		return hit.Text
	}
	return ""
}

// ValueAny tries several local names in order and returns the first
// non-empty text found irrespective of namespace. Used for fields that
// differ between the "dc" and government record schemas.
func (n *Node) ValueAny(locals ...string) string {
	for _, local := range locals {
		if hit := n.findLocal(local); hit != nil && hit.Text != "" {
			return hit.Text
		}
	}
	return ""
}

func (n *Node) findQualified(space, local string) *Node {
	var hit *Node
	n.walk(func(c *Node) {
		if hit == nil && c.XMLName.Space == space && c.XMLName.Local == local {
			hit = c
		}
	})
	return hit
}

func (n *Node) findLocal(local string) *Node {
	var hit *Node
	n.walk(func(c *Node) {
		if hit == nil && c.XMLName.Local == local {
			hit = c
		}
	})
	return hit
}

// walk visits every descendant of n in document order, excluding n
// itself.
func (n *Node) walk(visit func(*Node)) {
	for _, c := range n.Children {
		visit(c)
		c.walk(visit)
	}
}
