package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/tcase/internal/model"
)

// Codeforces samples keep their whitespace: fragments are copied verbatim
var codeforcesPolicy = TextPolicy{TrimFragments: false}

// CodeforcesExtractor reads Codeforces problem pages, where inputs and outputs
// live in separate .input / .output blocks paired by position.
type CodeforcesExtractor struct {
	htmlBase
}

// NewCodeforcesExtractor creates a Codeforces extractor
func NewCodeforcesExtractor(opts Options) *CodeforcesExtractor {
	return &CodeforcesExtractor{htmlBase{opts: opts}}
}

// Judge returns the judge name
func (e *CodeforcesExtractor) Judge() model.Judge {
	return model.JudgeCodeforces
}

// Extract builds a Problem from a Codeforces problem page
func (e *CodeforcesExtractor) Extract(d Document) (*model.Problem, error) {
	if d.ProblemID == "" {
		return nil, errEmptyID
	}
	j, id := e.Judge(), d.ProblemID

	doc, err := e.parse(d.Body)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(e.firstText(doc.Find(".title").First()))
	if name == "" {
		return nil, missingSection(j, id, "title")
	}

	timeLimit, ok := e.token(e.ownText(doc.Find(".time-limit").First()), 0)
	if !ok {
		return nil, missingSection(j, id, "time-limit")
	}

	inputs, err := e.samples(doc, "input", id)
	if err != nil {
		return nil, err
	}
	outputs, err := e.samples(doc, "output", id)
	if err != nil {
		return nil, err
	}

	if len(inputs) != len(outputs) {
		return nil, countMismatch(j, id, len(inputs), len(outputs))
	}
	if len(inputs) == 0 && e.opts.Strict {
		return nil, missingSection(j, id, "sample tests")
	}

	cases := make([]model.TestCase, len(inputs))
	for i := range inputs {
		cases[i] = model.TestCase{
			Input:  NormalizeCase(inputs[i]),
			Output: NormalizeCase(outputs[i]),
		}
	}

	return &model.Problem{
		ID:            id,
		Name:          name,
		TimeLimit:     timeLimit,
		Judge:         j,
		TestCases:     cases,
		StatementHTML: e.statement(doc, ".problem-statement"),
	}, nil
}

// samples folds the <pre> of every block with the given class, in document order
func (e *CodeforcesExtractor) samples(doc *goquery.Document, kind string, id string) ([]string, error) {
	blocks := doc.Find("." + kind)

	texts := make([]string, 0, blocks.Length())
	var missing bool
	blocks.EachWithBreak(func(_ int, block *goquery.Selection) bool {
		pre := block.Find("pre").First()
		if pre.Length() == 0 {
			missing = true
			return false
		}
		texts = append(texts, Fold(ChildNodes(pre), codeforcesPolicy))
		return true
	})

	if missing {
		return nil, missingSection(e.Judge(), id, kind+" sample <pre>")
	}
	return texts, nil
}
