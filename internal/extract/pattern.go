// Package extract turns the text of DDP member files into tabular records.
//
// Every supported member file is described by a [Pattern]: an ordered list
// of labelled lines that together form one logical entry, for example
//
//	Date: 2024-01-02 10:11:12
//	Link: https://www.tiktokv.com/share/video/123/
//
// A pattern compiles to a single multiline-anchored expression with one
// non-greedy capture per label, so a value always ends at the first line
// terminator and a group can never absorb the first line of the next one.
// Entries that do not match the full label sequence contribute nothing.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Shape selects how a pattern's matches become rows.
type Shape int

const (
	// ShapeFlat yields one record per matching group.
	ShapeFlat Shape = iota

	// ShapeIndexed yields the same records, surfaced in columnar form
	// (column -> row index -> value).
	ShapeIndexed

	// ShapeDelimited takes the first match of a single-field pattern and
	// splits its value on Delimiter, one row per value including empty ones.
	ShapeDelimited
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeIndexed:
		return "indexed"
	case ShapeDelimited:
		return "delimited"
	default:
		return "unknown"
	}
}

// DefaultSeparator follows a label when a field declares none.
const DefaultSeparator = ":"

// DefaultDelimiter splits ShapeDelimited values when none is declared.
const DefaultDelimiter = "|"

// Field is one labelled line of an entry.
type Field struct {
	Label      string   // Line prefix before the separator: "Date", "Like(s)"
	Separators []string // Accepted separators after the label (default ":")
}

// Pattern describes how to parse one member file.
type Pattern struct {
	Member    string   // Member base name: "Comments.txt"
	Fields    []Field  // Labelled lines of one entry, in file order
	Columns   []string // Output column labels, one per field
	Shape     Shape
	Delimiter string // ShapeDelimited only (default "|")
}

// ErrInvalidPattern is returned by Compile for malformed pattern definitions.
var ErrInvalidPattern = errors.New("invalid pattern")

// Matcher is a compiled Pattern.
type Matcher struct {
	pattern Pattern
	re      *regexp.Regexp
}

// Compile validates p and compiles its expression.
func Compile(p Pattern) (*Matcher, error) {
	if p.Member == "" {
		return nil, fmt.Errorf("%w: missing member name", ErrInvalidPattern)
	}
	if len(p.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s has no fields", ErrInvalidPattern, p.Member)
	}
	if len(p.Columns) != len(p.Fields) {
		return nil, fmt.Errorf("%w: %s has %d fields but %d columns",
			ErrInvalidPattern, p.Member, len(p.Fields), len(p.Columns))
	}
	if p.Shape == ShapeDelimited {
		if len(p.Fields) != 1 {
			return nil, fmt.Errorf("%w: delimited pattern %s must have exactly one field", ErrInvalidPattern, p.Member)
		}
		if p.Delimiter == "" {
			p.Delimiter = DefaultDelimiter
		}
	}

	for _, f := range p.Fields {
		if f.Label == "" {
			return nil, fmt.Errorf("%w: %s has an empty label", ErrInvalidPattern, p.Member)
		}
	}

	re, err := regexp.Compile(expression(p.Fields))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, p.Member, err)
	}

	p.Fields = cloneFields(p.Fields)
	p.Columns = append([]string(nil), p.Columns...)
	return &Matcher{pattern: p, re: re}, nil
}

// MustCompile is like Compile but panics on error.
// Use it for pattern tables declared at init.
func MustCompile(p Pattern) *Matcher {
	m, err := Compile(p)
	if err != nil {
		panic(err)
	}
	return m
}

// expression builds "(?m)^Label: (.*?)\nLabel2: (.*?)$" for the given fields.
func expression(fields []Field) string {
	var b strings.Builder
	b.WriteString("(?m)^")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(`\n`)
		}
		b.WriteString(regexp.QuoteMeta(f.Label))
		b.WriteString(separatorExpr(f.Separators))
		b.WriteString(` (.*?)`)
	}
	b.WriteString("$")
	return b.String()
}

func separatorExpr(seps []string) string {
	if len(seps) == 0 {
		return regexp.QuoteMeta(DefaultSeparator)
	}
	if len(seps) == 1 {
		return regexp.QuoteMeta(seps[0])
	}
	quoted := make([]string, len(seps))
	for i, s := range seps {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Label: f.Label, Separators: append([]string(nil), f.Separators...)}
	}
	return out
}

// Member returns the member base name the matcher parses.
func (m *Matcher) Member() string { return m.pattern.Member }

// Columns returns a copy of the output column labels.
func (m *Matcher) Columns() []string {
	return append([]string(nil), m.pattern.Columns...)
}

// Shape returns the pattern's output shape.
func (m *Matcher) Shape() Shape { return m.pattern.Shape }

// Expr returns the compiled expression source.
func (m *Matcher) Expr() string { return m.re.String() }

// Match parses text and returns the resulting records.
func (m *Matcher) Match(text string) Result {
	res := Result{
		Member:  m.pattern.Member,
		Columns: m.Columns(),
		Shape:   m.pattern.Shape,
	}

	if m.pattern.Shape == ShapeDelimited {
		match := m.re.FindStringSubmatch(text)
		if match == nil {
			return res
		}
		// Empty values are kept: "a||b" yields three rows.
		for _, v := range strings.Split(match[1], m.pattern.Delimiter) {
			res.Records = append(res.Records, Record{v})
		}
		return res
	}

	for _, match := range m.re.FindAllStringSubmatch(text, -1) {
		rec := make(Record, len(match)-1)
		copy(rec, match[1:])
		res.Records = append(res.Records, rec)
	}
	return res
}
