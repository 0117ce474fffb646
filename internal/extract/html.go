package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// htmlBase provides helpers shared by the HTML statement extractors
type htmlBase struct {
	opts Options
}

// parse parses the markup into a goquery document
func (b *htmlBase) parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// firstText returns the first text fragment found under the first element of sel
func (b *htmlBase) firstText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var found string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			found = n.Data
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(sel.Nodes[0])
	return found
}

// ownText concatenates the direct text children of the first element in sel
func (b *htmlBase) ownText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var buf strings.Builder
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	return buf.String()
}

// token returns the i-th whitespace-delimited token of s
func (b *htmlBase) token(s string, i int) (string, bool) {
	fields := strings.Fields(s)
	if i >= len(fields) {
		return "", false
	}
	return fields[i], true
}

// statement returns the outer HTML of the first match of selector, or ""
func (b *htmlBase) statement(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return out
}
