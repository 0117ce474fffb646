package model

// Judge identifies the online judge a problem was scraped from
type Judge string

const (
	JudgeCodeforces Judge = "codeforces" // HTML statement, two-column samples
	JudgeURI        Judge = "uri"        // HTML statement, division table samples
	JudgeUVa        Judge = "uva"        // PDF statement plus uHunt metadata
)

// Judges lists every supported judge in display order
func Judges() []Judge {
	return []Judge{JudgeCodeforces, JudgeURI, JudgeUVa}
}

func (j Judge) String() string {
	return string(j)
}

// TestCase is one sample input paired with its expected output
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Problem is the normalized record produced by an extractor.
// TestCases keeps document order; an empty slice means the statement had no samples.
type Problem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	TimeLimit string     `json:"time_limit"` // seconds, as published by the judge
	Judge     Judge      `json:"oj"`
	TestCases []TestCase `json:"test_cases"`

	// StatementHTML is the raw statement body when the judge serves HTML (optional export only)
	StatementHTML string `json:"-"`
}
