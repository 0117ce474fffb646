package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_Policies(t *testing.T) {
	nodes := []Node{Text("  5\n")}

	assert.Equal(t, "5", Fold(nodes, TextPolicy{TrimFragments: true}))
	assert.Equal(t, "  5\n", Fold(nodes, TextPolicy{TrimFragments: false}))
}

func TestFold_LineBreaksAndOtherElements(t *testing.T) {
	nodes := []Node{Text("1 2"), LineBreak{}, Text("3"), Other("span"), LineBreak{}}

	assert.Equal(t, "1 2\n3span\n", Fold(nodes, TextPolicy{}))
}

func TestFold_Empty(t *testing.T) {
	assert.Equal(t, "", Fold(nil, TextPolicy{}))
}

func TestChildNodes(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<pre>a<br>b<!-- note --><div class="test-example-line">c</div></pre>`))
	require.NoError(t, err)

	nodes := ChildNodes(doc.Find("pre"))
	assert.Equal(t, []Node{Text("a"), LineBreak{}, Text("b"), Other("div")}, nodes)
}

func TestChildNodes_EmptySelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>x</p>`))
	require.NoError(t, err)

	assert.Nil(t, ChildNodes(doc.Find("pre")))
}

func TestNormalizeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5", "5\n"},
		{"5\n", "5\n"},
		{"5\n\n\n", "5\n"},
		{"1 2\r\n3 4\r\n", "1 2\r\n3 4\n"},
		{"  5  \n", "  5  \n"},
		{"", "\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCase(tt.in), "NormalizeCase(%q)", tt.in)
	}
}
