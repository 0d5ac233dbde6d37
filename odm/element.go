// Package odm builds CDISC ODM XML documents for exchange with
// Medidata Rave Web Services.
package odm

import "strings"

// Attr is a single XML attribute. Attribute order is preserved exactly
// as written so rendered documents stay stable and diff-friendly.
type Attr struct {
	Name  string
	Value string
}

// Element is implemented by every node that can render itself into a
// document tree.
type Element interface {
	Build(b *Builder)
}

type node struct {
	name     string
	attrs    []Attr
	text     string
	children []*node
}

// Builder accumulates an XML element tree through a start/data/end
// protocol. Start opens an element, Data appends text content to the
// open element and End closes it.
type Builder struct {
	root  *node
	stack []*node
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Start opens a new element with the given attributes.
func (b *Builder) Start(name string, attrs ...Attr) {
	n := &node{name: name, attrs: attrs}
	if len(b.stack) == 0 {
		b.root = n
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.children = append(parent.children, n)
	}
	b.stack = append(b.stack, n)
}

// Data appends text content to the currently open element.
func (b *Builder) Data(text string) {
	if len(b.stack) == 0 {
		return
	}
	b.stack[len(b.stack)-1].text += text
}

// End closes the currently open element.
func (b *Builder) End() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// write renders the node indented two spaces per nesting level.
// Childless elements without text render self-closing.
func (n *node) write(sb *strings.Builder, level int) {
	pad := strings.Repeat("  ", level)
	sb.WriteString(pad)
	sb.WriteString("<")
	sb.WriteString(n.name)
	for _, a := range n.attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.Value))
		sb.WriteString(`"`)
	}
	if len(n.children) == 0 && n.text == "" {
		sb.WriteString(" />")
		return
	}
	sb.WriteString(">")
	if n.text != "" {
		sb.WriteString(textEscaper.Replace(n.text))
	}
	if len(n.children) > 0 {
		for _, c := range n.children {
			sb.WriteString("\n")
			c.write(sb, level+1)
		}
		sb.WriteString("\n")
		sb.WriteString(pad)
	}
	sb.WriteString("</")
	sb.WriteString(n.name)
	sb.WriteString(">")
}

const xmlHeader = `<?xml version="1.0" encoding="utf-8" ?>` + "\n"

// Render returns e as an indented XML document with the XML
// declaration header prepended.
func Render(e Element) string {
	b := NewBuilder()
	e.Build(b)
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	if b.root != nil {
		b.root.write(&sb, 0)
	}
	return sb.String()
}
