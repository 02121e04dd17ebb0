package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
	}{
		{
			name:    "missing member",
			pattern: Pattern{Fields: []Field{{Label: "Date"}}, Columns: []string{"Date"}},
		},
		{
			name:    "no fields",
			pattern: Pattern{Member: "a.txt"},
		},
		{
			name: "column count mismatch",
			pattern: Pattern{
				Member:  "a.txt",
				Fields:  []Field{{Label: "Date"}, {Label: "Link"}},
				Columns: []string{"Date"},
			},
		},
		{
			name: "delimited with two fields",
			pattern: Pattern{
				Member:  "a.txt",
				Fields:  []Field{{Label: "A"}, {Label: "B"}},
				Columns: []string{"A", "B"},
				Shape:   ShapeDelimited,
			},
		},
		{
			name: "empty label",
			pattern: Pattern{
				Member:  "a.txt",
				Fields:  []Field{{Label: ""}},
				Columns: []string{"A"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.pattern); !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("Compile() error = %v, want ErrInvalidPattern", err)
			}
		})
	}
}

func TestCompile_Expression(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   string
	}{
		{
			name:   "single label",
			fields: []Field{{Label: "Date"}},
			want:   `(?m)^Date: (.*?)$`,
		},
		{
			name:   "two labels",
			fields: []Field{{Label: "Date"}, {Label: "Link"}},
			want:   `(?m)^Date: (.*?)\nLink: (.*?)$`,
		},
		{
			name:   "label with metacharacters",
			fields: []Field{{Label: "Like(s)"}},
			want:   `(?m)^Like\(s\): (.*?)$`,
		},
		{
			name:   "alternative separators",
			fields: []Field{{Label: "HashTag Link", Separators: []string{":", "::"}}},
			want:   `(?m)^HashTag Link(?::|::) (.*?)$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := make([]string, len(tt.fields))
			for i, f := range tt.fields {
				cols[i] = f.Label
			}
			m, err := Compile(Pattern{Member: "x.txt", Fields: tt.fields, Columns: cols})
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if m.Expr() != tt.want {
				t.Errorf("Expr() = %q, want %q", m.Expr(), tt.want)
			}
		})
	}
}

func TestMatch_Flat(t *testing.T) {
	m := MustCompile(Pattern{
		Member:  "Comments.txt",
		Fields:  []Field{{Label: "Date"}, {Label: "Comment"}},
		Columns: []string{"Time and date", "Comment"},
	})

	tests := []struct {
		name string
		text string
		want []Record
	}{
		{
			name: "two well-formed groups",
			text: "Date: 2024-01-01 10:00:00\nComment: first\n\nDate: 2024-01-02 11:00:00\nComment: second\n",
			want: []Record{
				{"2024-01-01 10:00:00", "first"},
				{"2024-01-02 11:00:00", "second"},
			},
		},
		{
			name: "no trailing newline",
			text: "Date: a\nComment: b",
			want: []Record{{"a", "b"}},
		},
		{
			name: "orphan first line is dropped",
			text: "Date: orphan\nDate: a\nComment: b\n",
			want: []Record{{"a", "b"}},
		},
		{
			name: "value runs to end of line only",
			text: "Date: a\nComment: b\nDate: c\nComment: d\n",
			want: []Record{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "label must start the line",
			text: "x Date: a\nComment: b\n",
			want: nil,
		},
		{
			name: "empty value allowed",
			text: "Date: \nComment: b\n",
			want: []Record{{"", "b"}},
		},
		{
			name: "wrong structure yields nothing",
			text: "{\"Comments\": []}",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.text)
			if !reflect.DeepEqual(got.Records, tt.want) {
				t.Errorf("Records = %q, want %q", got.Records, tt.want)
			}
			if got.Member != "Comments.txt" {
				t.Errorf("Member = %q", got.Member)
			}
		})
	}
}

func TestMatch_FourFields(t *testing.T) {
	m := MustCompile(Pattern{
		Member: "Share History.txt",
		Fields: []Field{
			{Label: "Date"}, {Label: "Shared Content"}, {Label: "Link"}, {Label: "Method"},
		},
		Columns: []string{"Time and date", "Shared content", "Link", "Method"},
	})

	text := "Date: d1\nShared Content: video\nLink: l1\nMethod: copy\n\n" +
		"Date: d2\nShared Content: video\nLink: l2\n\n" + // incomplete, dropped
		"Date: d3\nShared Content: profile\nLink: l3\nMethod: whatsapp\n"

	got := m.Match(text)
	want := []Record{
		{"d1", "video", "l1", "copy"},
		{"d3", "profile", "l3", "whatsapp"},
	}
	if !reflect.DeepEqual(got.Records, want) {
		t.Errorf("Records = %q, want %q", got.Records, want)
	}
}

func TestMatch_AlternativeSeparator(t *testing.T) {
	m := MustCompile(Pattern{
		Member:  "Favorite HashTags.txt",
		Fields:  []Field{{Label: "Date"}, {Label: "HashTag Link", Separators: []string{":", "::"}}},
		Columns: []string{"Time and date", "Hashtag url"},
	})

	got := m.Match("Date: a\nHashTag Link:: u1\nDate: b\nHashTag Link: u2\n")
	want := []Record{{"a", "u1"}, {"b", "u2"}}
	if !reflect.DeepEqual(got.Records, want) {
		t.Errorf("Records = %q, want %q", got.Records, want)
	}
}

func TestMatch_Delimited(t *testing.T) {
	m := MustCompile(Pattern{
		Member:  "Settings.txt",
		Fields:  []Field{{Label: "Interests"}},
		Columns: []string{"Interests"},
		Shape:   ShapeDelimited,
	})

	tests := []struct {
		name string
		text string
		want []Record
	}{
		{
			name: "split on pipe",
			text: "Language: en\nInterests: Comedy|Food|Travel\nPrivate Account: No\n",
			want: []Record{{"Comedy"}, {"Food"}, {"Travel"}},
		},
		{
			name: "only first line used",
			text: "Interests: A|B\nInterests: C\n",
			want: []Record{{"A"}, {"B"}},
		},
		{
			name: "empty segments kept",
			text: "Interests: a||b|\n",
			want: []Record{{"a"}, {""}, {"b"}, {""}},
		},
		{
			name: "empty value is one empty row",
			text: "Interests: \n",
			want: []Record{{""}},
		},
		{
			name: "no interests line",
			text: "Language: en\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.text)
			if !reflect.DeepEqual(got.Records, tt.want) {
				t.Errorf("Records = %q, want %q", got.Records, tt.want)
			}
		})
	}
}

func TestResult_Columnar(t *testing.T) {
	m := MustCompile(Pattern{
		Member:  "Browsing History.txt",
		Fields:  []Field{{Label: "Date"}, {Label: "Link"}},
		Columns: []string{"Time and date", "Video watched"},
		Shape:   ShapeIndexed,
	})

	got := m.Match("Date: d0\nLink: v0\n\nDate: d1\nLink: v1\n").Columnar()
	want := map[string]map[string]string{
		"Time and date": {"0": "d0", "1": "d1"},
		"Video watched": {"0": "v0", "1": "v1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Columnar() = %v, want %v", got, want)
	}

	empty := m.Match("").Columnar()
	if len(empty) != 2 || len(empty["Time and date"]) != 0 {
		t.Errorf("Columnar() of empty result = %v", empty)
	}
}

func TestResult_Maps(t *testing.T) {
	res := Result{
		Columns: []string{"A", "B"},
		Records: []Record{{"1", "2"}},
	}
	got := res.Maps()
	if len(got) != 1 || got[0]["A"] != "1" || got[0]["B"] != "2" {
		t.Errorf("Maps() = %v", got)
	}
}

func TestMatcher_ColumnsIsCopy(t *testing.T) {
	cols := []string{"Date"}
	m := MustCompile(Pattern{Member: "a.txt", Fields: []Field{{Label: "Date"}}, Columns: cols})
	cols[0] = "changed"
	if m.Columns()[0] != "Date" {
		t.Error("matcher must not alias the caller's columns")
	}
	m.Columns()[0] = "changed"
	if m.Columns()[0] != "Date" {
		t.Error("Columns() must return a copy")
	}
}
