package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// MaxPreviewRows caps the rows shown per table on the review page.
const MaxPreviewRows = 100

// SessionParams describes the page for a session's current command.
// Exactly one of File, Retry, Consent, Exit or End is set.
type SessionParams struct {
	Lang     string
	Action   string // Base URL the answer forms post to
	Platform string
	Header   string

	File    *FileStep
	Retry   *RetryStep
	Consent *ConsentStep
	Exit    *ExitStep
	End     bool
}

// FileStep asks for the data download package.
type FileStep struct {
	Description string
	Extensions  string
}

// RetryStep reports an unrecognised file.
type RetryStep struct {
	Description string
	Ok          string
	Cancel      string
}

// ConsentStep shows the extracted tables for review.
type ConsentStep struct {
	Description string
	Tables      []TableParams
}

// TableParams is one reviewed table.
type TableParams struct {
	Title       string
	Description string
	Columns     []string
	Rows        [][]string
	Total       int // Rows before MaxPreviewRows was applied
}

// ExitStep is shown once the participant has answered the review.
type ExitStep struct {
	Info string
}

// SessionPage renders the full page for a session.
func SessionPage(p SessionParams) templ.Component {
	title := p.Header
	if title == "" {
		title = p.Platform
	}
	return Layout(p.Lang, title, SessionPartial(p))
}

// SessionPartial renders the step without the document shell.
func SessionPartial(params SessionParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<main id="donation">`)
		if params.Header != "" {
			p.raw("<h1>")
			p.text(params.Header)
			p.raw("</h1>")
		}

		l := labelsFor(params.Lang)
		a := answers{base: params.Action, lang: params.Lang}
		switch {
		case params.File != nil:
			fileStep(p, a, l, params.File)
		case params.Retry != nil:
			retryStep(p, a, params.Retry)
		case params.Consent != nil:
			consentStep(p, a, l, params.Consent)
		case params.Exit != nil:
			p.raw(`<p class="muted">`)
			p.text(params.Exit.Info)
			p.raw("</p>")
			button(p, a.to("continue"), l.Continue, "", "")
		case params.End:
			p.raw("<h1>")
			p.text(l.Thanks)
			p.raw("</h1><p>")
			p.text(l.Close)
			p.raw("</p>")
		}

		p.raw("</main>")
		return p.err
	})
}

// answers builds the form actions of a session page.
type answers struct {
	base string
	lang string
}

func (a answers) to(step string) string {
	u := a.base + "/" + step
	if a.lang != "" {
		u += "?lang=" + url.QueryEscape(a.lang)
	}
	return u
}

func fileStep(p *pageWriter, a answers, l labels, s *FileStep) {
	p.raw("<p>")
	p.text(s.Description)
	p.raw("</p><form")
	p.attr("method", "post")
	p.attr("enctype", "multipart/form-data")
	p.url("action", a.to("file"))
	p.raw(`><input type="file" name="file" required`)
	if s.Extensions != "" {
		p.attr("accept", s.Extensions)
	}
	p.raw("> <button>")
	p.text(l.Upload)
	p.raw("</button></form>")
	button(p, a.to("skip"), l.Skip, "", "")
}

func retryStep(p *pageWriter, a answers, s *RetryStep) {
	p.raw("<p>")
	p.text(s.Description)
	p.raw("</p>")
	button(p, a.to("retry"), s.Ok, "retry", "true")
	button(p, a.to("retry"), s.Cancel, "retry", "false")
}

func consentStep(p *pageWriter, a answers, l labels, s *ConsentStep) {
	p.raw("<p>")
	p.text(s.Description)
	p.raw("</p>")

	if len(s.Tables) == 0 {
		p.raw(`<p class="muted">`)
		p.text(l.NoData)
		p.raw("</p>")
	}
	for _, t := range s.Tables {
		table(p, l, t)
	}

	button(p, a.to("consent"), l.Donate, "decision", "donate")
	button(p, a.to("consent"), l.Decline, "decision", "decline")
}

func table(p *pageWriter, l labels, t TableParams) {
	p.raw("<section><h2>")
	p.text(t.Title)
	p.raw("</h2>")
	if t.Description != "" {
		p.raw("<p>")
		p.text(t.Description)
		p.raw("</p>")
	}

	p.raw("<table><thead><tr>")
	for _, c := range t.Columns {
		p.raw("<th>")
		p.text(c)
		p.raw("</th>")
	}
	p.raw("</tr></thead><tbody>")
	for _, row := range t.Rows {
		p.raw("<tr>")
		for _, v := range row {
			p.raw("<td>")
			p.text(v)
			p.raw("</td>")
		}
		p.raw("</tr>")
	}
	p.raw("</tbody></table>")

	if t.Total > len(t.Rows) {
		p.raw(`<p class="muted">`)
		p.text(fmt.Sprintf(l.Truncated, len(t.Rows), t.Total))
		p.raw("</p>")
	}
	p.raw("</section>")
}

// button renders a single-button form. name and value are sent as a hidden
// field when name is set.
func button(p *pageWriter, action, label, name, value string) {
	p.raw("<form")
	p.attr("method", "post")
	p.url("action", action)
	p.raw(">")
	if name != "" {
		p.raw(`<input type="hidden"`)
		p.attr("name", name)
		p.attr("value", value)
		p.raw(">")
	}
	p.raw("<button>")
	p.text(label)
	p.raw("</button></form>")
}
