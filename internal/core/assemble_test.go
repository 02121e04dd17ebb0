package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/JonMunkholm/ddport/internal/ddp"
	"github.com/JonMunkholm/ddport/internal/ddp/ddptest"
)

type mapSource map[string]string

func (m mapSource) ReadText(name string) (string, error) {
	s, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ddp.ErrMemberNotFound)
	}
	return s, nil
}

func TestAssemble_OrderAndEmptyTables(t *testing.T) {
	p := testPlatform()
	src := mapSource{
		"Comments.txt":         commentsTxt,
		"Searches.txt":         "Date: 2024-02-01 08:00:00\nSearch Term: cats\n",
		"Browsing History.txt": "no entries here",
	}

	tables := Assemble(src, p.Tables, quietLogger())

	var names []string
	for _, tbl := range tables {
		names = append(names, tbl.Name)
	}
	want := []string{"test_searches", "test_comments"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("tables = %v, want %v", names, want)
	}
	for _, tbl := range tables {
		if tbl.Len() == 0 {
			t.Errorf("table %s is empty", tbl.Name)
		}
	}
	if len(tables[0].Visualizations) != 1 || tables[0].Visualizations[0].TextColumn != "Search term" {
		t.Errorf("search visualizations = %+v", tables[0].Visualizations)
	}
}

func TestAssemble_NothingMatches(t *testing.T) {
	p := testPlatform()
	tables := Assemble(mapSource{}, p.Tables, quietLogger())
	if tables == nil || len(tables) != 0 {
		t.Errorf("Assemble() = %#v, want empty non-nil slice", tables)
	}
}

func TestAssembleZip(t *testing.T) {
	p := testPlatform()
	zip := ddptest.WriteZip(t,
		ddptest.File{Name: "data/Browsing History.txt", Body: "Date: 2024-01-01 00:00:01\r\nLink: https://a\r\n\r\nDate: 2024-01-01 00:00:02\r\nLink: https://b\r\n"},
	)

	tables := AssembleZip(zip, p.Tables, quietLogger())
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if got := tables[0].Records[1][1]; got != "https://b" {
		t.Errorf("second link = %q, want https://b", got)
	}

	if got := AssembleZip(ddptest.WriteFile(t, "x.zip", "nope"), p.Tables, nil); len(got) != 0 {
		t.Errorf("unreadable archive produced %d tables", len(got))
	}
}

func TestTable_View(t *testing.T) {
	p := testPlatform()
	src := mapSource{
		"Browsing History.txt": "Date: d1\nLink: l1\n\nDate: d2\nLink: l2\n",
		"Comments.txt":         "Date: d1\nComment: c1\n",
	}
	tables := Assemble(src, p.Tables, quietLogger())
	if len(tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(tables))
	}

	indexed, flat := tables[0].View(), tables[1].View()

	if indexed.Rows != nil {
		t.Error("indexed table has rows")
	}
	if got := indexed.DataFrame["Video watched"]["1"]; got != "l2" {
		t.Errorf(`data_frame["Video watched"]["1"] = %q, want l2`, got)
	}
	if flat.DataFrame != nil {
		t.Error("flat table has a data frame")
	}
	if len(flat.Rows) != 1 || flat.Rows[0]["Comment"] != "c1" {
		t.Errorf("rows = %v", flat.Rows)
	}

	raw, err := json.Marshal(tables[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "columns", "data_frame", "visualizations"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("json missing %q: %s", key, raw)
		}
	}
	if decoded["id"] != "test_browsing" {
		t.Errorf("id = %v", decoded["id"])
	}
}
