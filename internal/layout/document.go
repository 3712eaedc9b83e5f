// Package layout is a tiny element document standing in for the DOM: an HTML
// fragment whose elements carry their box in data-left/top/width/height
// attributes and are matched with CSS selectors.
package layout

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/interact"
)

// Box attributes in CSS pixels
const (
	attrLeft   = "data-left"
	attrTop    = "data-top"
	attrWidth  = "data-width"
	attrHeight = "data-height"
)

// Document holds the parsed fragment and its laid out elements
type Document struct {
	root      *html.Node
	elements  []*Element
	byNode    map[*html.Node]*Element
	selectors map[string]cascadia.Selector
	bad       map[string]bool
}

// Element is a laid out node. Its box is read from attributes on every call.
type Element struct {
	node *html.Node
	doc  *Document
}

// Parse reads an HTML fragment. Elements without a data-width attribute are not laid out.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	d := &Document{
		root:      root,
		byNode:    make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Selector),
		bad:       make(map[string]bool),
	}
	d.collect(root)
	return d, nil
}

func (d *Document) collect(n *html.Node) {
	if n.Type == html.ElementNode && hasAttr(n, attrWidth) {
		e := &Element{node: n, doc: d}
		d.elements = append(d.elements, e)
		d.byNode[n] = e
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.collect(c)
	}
}

// Elements returns every laid out element in document order
func (d *Document) Elements() []*Element {
	return d.elements
}

// ByID returns the element with the given id
func (d *Document) ByID(id string) *Element {
	for _, e := range d.elements {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// QuerySelectorAll returns laid out elements matching selector in document order.
// Invalid selectors match nothing and are logged once.
func (d *Document) QuerySelectorAll(selector string) []interact.Element {
	sel, ok := d.compile(selector)
	if !ok {
		return nil
	}
	var out []interact.Element
	for _, n := range sel.MatchAll(d.root) {
		if e, ok := d.byNode[n]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (d *Document) compile(selector string) (cascadia.Selector, bool) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, true
	}
	if d.bad[selector] {
		return nil, false
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		log.Printf("layout: ignoring selector %q: %v", selector, err)
		d.bad[selector] = true
		return nil, false
	}
	d.selectors[selector] = sel
	return sel, true
}

// ID returns the id attribute
func (e *Element) ID() string {
	return attr(e.node, "id")
}

// Text returns the element's direct text content
func (e *Element) Text() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// Box returns offsetLeft/Top/Width/Height in CSS pixels
func (e *Element) Box() geom.Rectangle {
	return geom.NewRectangle(
		numAttr(e.node, attrLeft),
		numAttr(e.node, attrTop),
		numAttr(e.node, attrWidth),
		numAttr(e.node, attrHeight),
	)
}

// Matches reports whether the element matches selector
func (e *Element) Matches(selector string) bool {
	sel, ok := e.doc.compile(selector)
	return ok && sel.Match(e.node)
}

// MoveTo changes the element's top-left corner
func (e *Element) MoveTo(left, top float64) {
	setAttr(e.node, attrLeft, left)
	setAttr(e.node, attrTop, top)
}

// Resize changes the element's size
func (e *Element) Resize(width, height float64) {
	setAttr(e.node, attrWidth, width)
	setAttr(e.node, attrHeight, height)
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func numAttr(n *html.Node, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(attr(n, key)), "px"), 64)
	if err != nil {
		return 0
	}
	return v
}

func setAttr(n *html.Node, key string, v float64) {
	val := strconv.FormatFloat(v, 'f', -1, 64)
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
