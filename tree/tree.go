// Package tree holds the generic element tree documents are rendered from.
package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Attr is a single element attribute. Attributes keep document order.
type Attr struct {
	Key   string
	Value string
}

// Node is one element of the document. Text is the character data between the
// opening tag and the first child, Tail is the character data following the
// closing tag up to the next sibling - it belongs to the parent text stream
// and is never rendered as part of the node itself.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
	Tail     string
}

// Attr returns value of the named attribute and whether it was present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns value of the named attribute or def when absent.
func (n *Node) AttrDefault(key, def string) string {
	if v, ok := n.Attr(key); ok {
		return v
	}
	return def
}

// HasAttr reports attribute presence regardless of its value.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// RequireAttr returns value of the named attribute or MissingAttributeError.
func (n *Node) RequireAttr(key string) (string, error) {
	if v, ok := n.Attr(key); ok {
		return v, nil
	}
	return "", &MissingAttributeError{Tag: n.Tag, Attr: key}
}

// Walk visits node and all its descendants in depth-first pre-order. Walking
// stops on the first error returned by fn.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// PlainText returns all character data inside the node (own text, children
// content and children tails) with markup dropped. Node's own tail is not
// included.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.plainText(&sb)
	return sb.String()
}

func (n *Node) plainText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		child.plainText(sb)
		sb.WriteString(child.Tail)
	}
}

// CharsetReader converts input in named encoding to UTF-8.
type CharsetReader func(label string, input io.Reader) (io.Reader, error)

// Parse reads XML document from r and returns its root element. When cr is
// nil encodings declared in the XML prolog are handled automatically.
func Parse(r io.Reader, cr CharsetReader) (*Node, error) {
	if cr == nil {
		cr = charset.NewReaderLabel
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: cr,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return FromElement(root), nil
}

// FromElement converts etree element (with its subtree) into Node.
func FromElement(el *etree.Element) *Node {
	n := &Node{
		Tag:  el.Tag,
		Text: el.Text(),
		Tail: el.Tail(),
	}
	if len(el.Attr) > 0 {
		n.Attrs = make([]Attr, 0, len(el.Attr))
		for _, a := range el.Attr {
			n.Attrs = append(n.Attrs, Attr{Key: a.FullKey(), Value: a.Value})
		}
	}
	for _, child := range el.ChildElements() {
		n.Children = append(n.Children, FromElement(child))
	}
	return n
}
