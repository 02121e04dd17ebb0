package core

import (
	"encoding/json"

	"github.com/JonMunkholm/ddport/internal/extract"
)

// DefaultLocale is used when a text has no entry for the requested locale.
const DefaultLocale = "en"

// RequiredLocales lists the locales every participant-facing text must carry.
var RequiredLocales = []string{"en", "nl"}

// Translatable is a participant-facing text in several locales.
// The zero value has no translations. Values are immutable once built.
type Translatable struct {
	texts map[string]string
}

// NewTranslatable builds a Translatable from locale -> text.
func NewTranslatable(texts map[string]string) Translatable {
	t := Translatable{texts: make(map[string]string, len(texts))}
	for k, v := range texts {
		t.texts[k] = v
	}
	return t
}

// Same builds a Translatable carrying the same text for every required locale.
func Same(text string) Translatable {
	m := make(map[string]string, len(RequiredLocales))
	for _, l := range RequiredLocales {
		m[l] = text
	}
	return NewTranslatable(m)
}

// Text returns the text for locale, falling back to DefaultLocale.
func (t Translatable) Text(locale string) string {
	if s, ok := t.texts[locale]; ok {
		return s
	}
	return t.texts[DefaultLocale]
}

// Has reports whether a translation exists for locale.
func (t Translatable) Has(locale string) bool {
	_, ok := t.texts[locale]
	return ok
}

// Map returns a copy of the translations.
func (t Translatable) Map() map[string]string {
	out := make(map[string]string, len(t.texts))
	for k, v := range t.texts {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the translations as a locale -> text object.
func (t Translatable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

// UnmarshalJSON decodes a locale -> text object.
func (t *Translatable) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = NewTranslatable(m)
	return nil
}

// MarshalYAML encodes the translations as a locale -> text mapping.
func (t Translatable) MarshalYAML() (any, error) {
	return t.Map(), nil
}

// VisualizationWordCloud renders word frequencies of a text column.
const VisualizationWordCloud = "wordcloud"

// Visualization is a rendering hint attached to a table.
type Visualization struct {
	Type       string       `json:"type" yaml:"type"`
	Title      Translatable `json:"title" yaml:"title"`
	TextColumn string       `json:"textColumn" yaml:"textColumn"`
}

// DisplaySpec declares one table of the review page.
type DisplaySpec struct {
	Name           string // Stable identifier: "tiktok_comments"
	Title          Translatable
	Description    Translatable
	Matcher        *extract.Matcher
	Visualizations []Visualization
}

// Table is an extracted, displayable table.
type Table struct {
	Name           string
	Title          Translatable
	Description    Translatable
	Columns        []string
	Records        []extract.Record
	Shape          extract.Shape
	Visualizations []Visualization
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Records) }

// TableView is the serialised form of a Table.
//
// Indexed tables carry their values as DataFrame (column -> row index ->
// value); all other shapes carry Rows.
type TableView struct {
	ID             string                       `json:"id" yaml:"id"`
	Title          Translatable                 `json:"title" yaml:"title"`
	Description    Translatable                 `json:"description" yaml:"description"`
	Columns        []string                     `json:"columns" yaml:"columns"`
	Rows           []map[string]string          `json:"rows,omitempty" yaml:"rows,omitempty"`
	DataFrame      map[string]map[string]string `json:"data_frame,omitempty" yaml:"data_frame,omitempty"`
	Visualizations []Visualization              `json:"visualizations" yaml:"visualizations"`
}

// View converts the table to its serialised form.
func (t Table) View() TableView {
	res := extract.Result{Columns: t.Columns, Records: t.Records, Shape: t.Shape}

	v := TableView{
		ID:             t.Name,
		Title:          t.Title,
		Description:    t.Description,
		Columns:        append([]string(nil), t.Columns...),
		Visualizations: append([]Visualization{}, t.Visualizations...),
	}
	if t.Shape == extract.ShapeIndexed {
		v.DataFrame = res.Columnar()
	} else {
		v.Rows = res.Maps()
	}
	return v
}

// MarshalJSON encodes the table through its View.
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.View())
}

// MarshalYAML encodes the table through its View.
func (t Table) MarshalYAML() (any, error) {
	return t.View(), nil
}

// PageTexts holds the platform-specific page texts.
type PageTexts struct {
	SubmitFileHeader  Translatable
	ReviewHeader      Translatable
	ReviewDescription Translatable
	RetryHeader       Translatable
}
