package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/tcase/internal/model"
)

// URI pages indent their samples, so every text fragment is trimmed
var uriPolicy = TextPolicy{TrimFragments: true}

// URIExtractor reads URI Online Judge problem pages. Each .division holds a
// sample input; its output is rendered in the next sibling element.
type URIExtractor struct {
	htmlBase
}

// NewURIExtractor creates a URI extractor
func NewURIExtractor(opts Options) *URIExtractor {
	return &URIExtractor{htmlBase{opts: opts}}
}

// Judge returns the judge name
func (e *URIExtractor) Judge() model.Judge {
	return model.JudgeURI
}

// Extract builds a Problem from a URI problem page
func (e *URIExtractor) Extract(d Document) (*model.Problem, error) {
	if d.ProblemID == "" {
		return nil, errEmptyID
	}
	j, id := e.Judge(), d.ProblemID

	doc, err := e.parse(d.Body)
	if err != nil {
		return nil, err
	}

	header := doc.Find(".header").First()
	if header.Length() == 0 {
		return nil, missingSection(j, id, "header")
	}

	name := strings.TrimSpace(header.Find("h1").First().Text())
	if name == "" {
		return nil, missingSection(j, id, "title")
	}

	timeLimit, ok := e.token(header.Find("strong").First().Text(), 1)
	if !ok {
		return nil, missingSection(j, id, "time-limit")
	}

	var cases []model.TestCase
	var extractErr error
	doc.Find(".division").EachWithBreak(func(i int, division *goquery.Selection) bool {
		in := division.Find("p").First()
		if in.Length() == 0 {
			extractErr = missingSection(j, id, "sample input paragraph")
			return false
		}

		out := division.Next().Find("p").First()
		if out.Length() == 0 {
			extractErr = missingSection(j, id, "sample output paragraph")
			return false
		}

		cases = append(cases, model.TestCase{
			Input:  NormalizeCase(Fold(ChildNodes(in), uriPolicy)),
			Output: NormalizeCase(Fold(ChildNodes(out), uriPolicy)),
		})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	if len(cases) == 0 {
		if e.opts.Strict {
			return nil, missingSection(j, id, "sample tests")
		}
		cases = []model.TestCase{}
	}

	return &model.Problem{
		ID:            id,
		Name:          name,
		TimeLimit:     timeLimit,
		Judge:         j,
		TestCases:     cases,
		StatementHTML: e.statement(doc, ".problem"),
	}, nil
}
