// Package richtext flattens CMS rich-text trees into plain text. A tree is a
// recursive structure whose leaves are text nodes carrying a literal value and
// whose containers carry an ordered child list. Extraction is a pure function:
// no mutation, no I/O, and missing or malformed pieces yield empty strings
// rather than errors.
package richtext

import "strings"

// Node is one node of a rich-text tree as decoded from the CMS JSON payload.
// Text nodes have NodeType "text" and a Value; every other node type is
// treated as a container of Content children.
type Node struct {
	NodeType string `json:"nodeType"`
	Value    string `json:"value"`
	Content  []Node `json:"content"`
}

// Document is the top-level rich-text payload (the CMS wraps the node list in
// a document object).
type Document struct {
	NodeType string `json:"nodeType"`
	Content  []Node `json:"content"`
}

const textNodeType = "text"

// Text returns the plain text of the subtree rooted at n: a text node yields
// its literal value, a container yields its children's text joined by single
// spaces. An empty child list yields the empty string.
func (n Node) Text() string {
	if n.NodeType == textNodeType {
		return n.Value
	}
	if len(n.Content) == 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Content))
	for _, child := range n.Content {
		parts = append(parts, child.Text())
	}
	return strings.Join(parts, " ")
}

// Text flattens the whole document.
func (d Document) Text() string {
	return Node{Content: d.Content}.Text()
}

// FromAny flattens a rich-text value that was decoded into generic JSON types
// (map[string]any / []any), as GraphQL responses arrive. Unrecognized shapes
// and missing keys yield the empty string.
func FromAny(v any) string {
	switch node := v.(type) {
	case map[string]any:
		if nodeType, _ := node["nodeType"].(string); nodeType == textNodeType {
			value, _ := node["value"].(string)
			return value
		}
		if children, ok := node["content"]; ok {
			return FromAny(children)
		}
		return ""
	case []any:
		if len(node) == 0 {
			return ""
		}
		parts := make([]string, 0, len(node))
		for _, child := range node {
			parts = append(parts, FromAny(child))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// FromDocument flattens a decoded document object. A document without a
// content list yields the empty string.
func FromDocument(doc map[string]any) string {
	children, ok := doc["content"]
	if !ok {
		return ""
	}
	return FromAny(children)
}

// IsDocument reports whether v looks like a decoded rich-text document, i.e.
// a map carrying a content list.
func IsDocument(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m["content"]
	return ok
}
