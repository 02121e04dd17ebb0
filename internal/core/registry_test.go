package core

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/JonMunkholm/ddport/internal/ddp"
)

func TestRegisterPlatform(t *testing.T) {
	ClearPlatforms()
	defer ClearPlatforms()

	p := testPlatform()
	p.Extensions = ""
	RegisterPlatform(p)

	got, ok := GetPlatform("testplatform")
	if !ok {
		t.Fatal("registered platform not found")
	}
	if got.Extensions != DefaultExtensions {
		t.Errorf("Extensions = %q, want default", got.Extensions)
	}
	if _, ok := GetPlatform("missing"); ok {
		t.Error("GetPlatform(missing) returned ok")
	}

	other := testPlatform()
	other.Key = "another"
	RegisterPlatform(other)

	all := Platforms()
	if len(all) != 2 || all[0].Key != "another" || all[1].Key != "testplatform" {
		t.Errorf("Platforms() not sorted by key: %v, %v", all[0].Key, all[1].Key)
	}
}

func TestRegisterPlatform_PanicsOnDuplicate(t *testing.T) {
	ClearPlatforms()
	defer ClearPlatforms()

	RegisterPlatform(testPlatform())
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate key")
		}
	}()
	RegisterPlatform(testPlatform())
}

func TestPlatform_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Platform)
		wantErr string
	}{
		{"valid", func(p *Platform) {}, ""},
		{"missing key", func(p *Platform) { p.Key = "" }, "key is required"},
		{"missing name", func(p *Platform) { p.Name = "" }, "name is required"},
		{"no manifests", func(p *Platform) { p.Manifests = []ddp.Manifest{} }, "manifest"},
		{
			"missing dutch header",
			func(p *Platform) { p.Texts.RetryHeader = NewTranslatable(map[string]string{"en": "Try again"}) },
			`missing "nl"`,
		},
		{"duplicate table", func(p *Platform) { p.Tables = append(p.Tables, p.Tables[0]) }, "duplicate table"},
		{"table without matcher", func(p *Platform) { p.Tables[1].Matcher = nil }, "no matcher"},
		{
			"visualization column unknown",
			func(p *Platform) { p.Tables[0].Visualizations[0].TextColumn = "Zoekterm" },
			"visualization column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPlatform()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestTranslatable(t *testing.T) {
	src := map[string]string{"en": "Hello", "nl": "Hallo"}
	tr := NewTranslatable(src)
	src["en"] = "changed"

	if got := tr.Text("en"); got != "Hello" {
		t.Errorf("Text(en) = %q, translatable shares caller map", got)
	}
	if got := tr.Text("nl"); got != "Hallo" {
		t.Errorf("Text(nl) = %q", got)
	}
	if got := tr.Text("de"); got != "Hello" {
		t.Errorf("Text(de) = %q, want en fallback", got)
	}
	if !tr.Has("nl") || tr.Has("de") {
		t.Error("Has() reports wrong locales")
	}

	m := tr.Map()
	m["nl"] = "x"
	if tr.Text("nl") != "Hallo" {
		t.Error("Map() exposes internal map")
	}
}

func TestTranslatable_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewTranslatable(map[string]string{"en": "Yes", "nl": "Ja"}))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"en":"Yes","nl":"Ja"}` {
		t.Errorf("Marshal = %s", data)
	}

	var tr Translatable
	if err := json.Unmarshal(data, &tr); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if tr.Text("nl") != "Ja" || !tr.Has("en") {
		t.Errorf("decoded = %v", tr.Map())
	}
}
