package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders an error fragment for HTMX swaps.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<div class="alert" role="alert"><strong>`)
		p.text(message)
		p.raw("</strong>")
		if action != "" {
			p.raw("<p>")
			p.text(action)
			p.raw("</p>")
		}
		p.raw(`<p class="muted">Code: `)
		p.text(code)
		p.raw("</p></div>")
		return p.err
	})
}

// ErrorParams describes a full error page.
type ErrorParams struct {
	Lang    string
	Message string
	Action  string
	Code    string
	Restart string // Where "start again" links to; empty hides the link
}

// ErrorPage renders a full error page.
func ErrorPage(params ErrorParams) templ.Component {
	l := labelsFor(params.Lang)
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw("<main><h1>")
		p.text(l.Error)
		p.raw("</h1>")
		p.render(ctx, ErrorAlert(params.Message, params.Action, params.Code))
		if params.Restart != "" {
			p.raw("<p><a")
			p.url("href", params.Restart)
			p.raw(">")
			p.text(l.Retry)
			p.raw("</a></p>")
		}
		p.raw("</main>")
		return p.err
	})
	return Layout(params.Lang, l.Error, body)
}
