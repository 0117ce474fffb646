package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is one child of a sample block, reduced to what the text policy cares about.
// The set of implementations is closed: Text, LineBreak and Other.
type Node interface {
	node()
}

// Text is a plain text fragment
type Text string

// LineBreak is a <br> element
type LineBreak struct{}

// Other is any other element, carried by its tag name
type Other string

func (Text) node()      {}
func (LineBreak) node() {}
func (Other) node()     {}

// TextPolicy controls how nodes are folded into a string
type TextPolicy struct {
	// TrimFragments strips surrounding whitespace from every text fragment
	TrimFragments bool
}

// FromHTML classifies a parsed HTML node. Comments and doctypes yield ok=false.
func FromHTML(n *html.Node) (Node, bool) {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data), true
	case html.ElementNode:
		if n.Data == "br" {
			return LineBreak{}, true
		}
		return Other(n.Data), true
	default:
		return nil, false
	}
}

// ChildNodes returns the direct children of the first element in sel
func ChildNodes(sel *goquery.Selection) []Node {
	if sel.Length() == 0 {
		return nil
	}

	var nodes []Node
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if n, ok := FromHTML(c); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Fold concatenates nodes: text is copied (trimmed if the policy says so),
// line breaks become "\n" and other elements become their tag name.
func Fold(nodes []Node, policy TextPolicy) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			s := string(v)
			if policy.TrimFragments {
				s = strings.TrimSpace(s)
			}
			b.WriteString(s)
		case LineBreak:
			b.WriteByte('\n')
		case Other:
			b.WriteString(string(v))
		}
	}
	return b.String()
}

// NormalizeCase makes a sample text end with exactly one newline
func NormalizeCase(s string) string {
	return strings.TrimRight(s, "\r\n") + "\n"
}
