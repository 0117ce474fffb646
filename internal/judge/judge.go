// Package judge holds the static endpoint table of the supported online judges.
package judge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/tcase/internal/model"
)

// ErrUnknownJudge is returned for judge names that have no extractor
var ErrUnknownJudge = errors.New("judge not implemented")

// Endpoints holds the host and URL formats of one judge.
// Formats are fmt verbs applied to the host followed by id-derived parts.
type Endpoints struct {
	Host    string
	Problem string
	Stats   string // absolute format taking the problem id, empty if unused
}

var defaults = map[model.Judge]Endpoints{
	model.JudgeCodeforces: {
		Host:    "http://codeforces.com",
		Problem: "%s/problemset/problem/%s/%s",
	},
	model.JudgeURI: {
		Host:    "https://www.urionlinejudge.com.br",
		Problem: "%s/repository/UOJ_%s_en.html",
	},
	model.JudgeUVa: {
		Host:    "https://uva.onlinejudge.org",
		Problem: "%s/external/%s/%s.pdf",
		Stats:   "https://uhunt.onlinejudge.org/api/p/num/%s",
	},
}

var aliases = map[string]model.Judge{
	"cf":         model.JudgeCodeforces,
	"codeforces": model.JudgeCodeforces,
	"uri":        model.JudgeURI,
	"uva":        model.JudgeUVa,
}

// Parse resolves a judge name or alias
func Parse(name string) (model.Judge, error) {
	j, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownJudge)
	}
	return j, nil
}

// Aliases returns the accepted names for a judge
func Aliases(j model.Judge) []string {
	var names []string
	for name, target := range aliases {
		if target == j {
			names = append(names, name)
		}
	}
	return names
}

// NormalizeID applies the judge's id rules (Codeforces ids are uppercased)
func NormalizeID(j model.Judge, id string) (string, error) {
	id = strings.TrimSpace(id)
	switch j {
	case model.JudgeCodeforces:
		if len(id) < 2 {
			return "", fmt.Errorf("codeforces id %q: want contest number followed by index", id)
		}
		return strings.ToUpper(id), nil
	case model.JudgeURI:
		if id == "" {
			return "", fmt.Errorf("uri id is empty")
		}
		return id, nil
	case model.JudgeUVa:
		if len(id) < 3 {
			return "", fmt.Errorf("uva id %q: want at least 3 digits", id)
		}
		return id, nil
	default:
		return "", fmt.Errorf("%q: %w", j, ErrUnknownJudge)
	}
}

// Table is the immutable judge -> endpoints mapping built once at startup
type Table struct {
	endpoints map[model.Judge]Endpoints
}

// NewTable builds the table from the defaults and optional per-judge overrides
func NewTable(overrides map[string]model.JudgeConfig) *Table {
	endpoints := make(map[model.Judge]Endpoints, len(defaults))
	for j, e := range defaults {
		endpoints[j] = e
	}

	for name, o := range overrides {
		j, err := Parse(name)
		if err != nil {
			continue
		}
		e := endpoints[j]
		if o.Host != "" {
			e.Host = strings.TrimSuffix(o.Host, "/")
		}
		if o.Stats != "" {
			e.Stats = o.Stats
		}
		endpoints[j] = e
	}

	return &Table{endpoints: endpoints}
}

// Endpoints returns a copy of the endpoints for a judge
func (t *Table) Endpoints(j model.Judge) (Endpoints, bool) {
	e, ok := t.endpoints[j]
	return e, ok
}

// ProblemURL builds the statement URL for an already normalized id
func (t *Table) ProblemURL(j model.Judge, id string) (string, error) {
	e, ok := t.endpoints[j]
	if !ok {
		return "", fmt.Errorf("%q: %w", j, ErrUnknownJudge)
	}

	switch j {
	case model.JudgeCodeforces:
		return fmt.Sprintf(e.Problem, e.Host, id[:len(id)-1], id[len(id)-1:]), nil
	case model.JudgeURI:
		return fmt.Sprintf(e.Problem, e.Host, id), nil
	case model.JudgeUVa:
		return fmt.Sprintf(e.Problem, e.Host, id[:len(id)-2], id), nil
	default:
		return "", fmt.Errorf("%q: %w", j, ErrUnknownJudge)
	}
}

// StatsURL builds the metadata lookup URL, for judges that have one
func (t *Table) StatsURL(j model.Judge, id string) (string, error) {
	e, ok := t.endpoints[j]
	if !ok || e.Stats == "" {
		return "", fmt.Errorf("judge %s has no metadata endpoint", j)
	}
	if strings.Contains(e.Stats, "%s") {
		return fmt.Sprintf(e.Stats, id), nil
	}
	return strings.TrimSuffix(e.Stats, "/") + "/" + id, nil
}
