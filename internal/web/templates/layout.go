// Package templates renders the participant-facing donation pages.
//
// Components are plain templ.Components so handlers render them the same
// way for full pages and for HTMX partials:
//
//	templates.SessionPage(params).Render(r.Context(), w)
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// pageWriter writes HTML fragments and keeps the first error.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *pageWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *pageWriter) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (p *pageWriter) url(name, value string) {
	p.attr(name, string(templ.URL(value)))
}

func (p *pageWriter) render(ctx context.Context, c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(ctx, p.w)
	}
}

// Layout wraps body in the HTML document shell.
func Layout(lang, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw("<!DOCTYPE html>\n<html")
		p.attr("lang", lang)
		p.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(title)
		p.raw(`</title><style>`)
		p.raw(stylesheet)
		p.raw(`</style></head><body>`)
		p.render(ctx, body)
		p.raw("</body></html>\n")
		return p.err
	})
}

const stylesheet = `body{font-family:system-ui,sans-serif;max-width:56rem;margin:2rem auto;padding:0 1rem;color:#1f2937}` +
	`h1{font-size:1.5rem}table{border-collapse:collapse;width:100%;margin:.5rem 0 1.5rem}` +
	`th,td{border:1px solid #d1d5db;padding:.25rem .5rem;text-align:left;font-size:.875rem}` +
	`form{display:inline-block;margin:.5rem .5rem .5rem 0}button{padding:.5rem 1rem}` +
	`.alert{border:1px solid #f87171;background:#fef2f2;padding:1rem}.muted{color:#6b7280}`
