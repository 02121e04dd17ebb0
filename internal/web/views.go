package web

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/web/templates"
)

// sessionResponse is the JSON shape of a session and its current command.
type sessionResponse struct {
	ID        string          `json:"id"`
	Platform  string          `json:"platform"`
	State     string          `json:"state"`
	Done      bool            `json:"done"`
	Command   *commandView    `json:"command,omitempty"`
	Consent   json.RawMessage `json:"consent,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	LastSeen  time.Time       `json:"last_seen"`
}

// commandView flattens the core.Command variants. Type is "page", "exit"
// or "end".
type commandView struct {
	Type     string             `json:"type"`
	Platform string             `json:"platform,omitempty"`
	Header   *core.Translatable `json:"header,omitempty"`
	Prompt   *promptView        `json:"prompt,omitempty"`
	Code     *int               `json:"code,omitempty"`
	Info     string             `json:"info,omitempty"`
}

// promptView flattens the core.Prompt variants. Type is "file", "retry"
// or "consent".
type promptView struct {
	Type        string             `json:"type"`
	ID          string             `json:"id,omitempty"`
	Description core.Translatable  `json:"description"`
	Extensions  string             `json:"extensions,omitempty"`
	Ok          *core.Translatable `json:"ok,omitempty"`
	Cancel      *core.Translatable `json:"cancel,omitempty"`
	Tables      *[]core.Table      `json:"tables,omitempty"`
}

type platformView struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Extensions string `json:"extensions"`
	Tables     int    `json:"tables"`
}

func newSessionResponse(v core.SessionView) sessionResponse {
	resp := sessionResponse{
		ID:        v.ID,
		Platform:  v.Platform,
		State:     v.State,
		Done:      v.Done,
		Command:   newCommandView(v.Command),
		CreatedAt: v.CreatedAt,
		LastSeen:  v.LastSeen,
	}
	if v.Consent != nil && v.Consent.Kind == core.PayloadJSON {
		resp.Consent = json.RawMessage(v.Consent.Value)
	}
	return resp
}

func newCommandView(cmd core.Command) *commandView {
	switch c := cmd.(type) {
	case core.Page:
		header := c.Header
		return &commandView{
			Type:     c.Kind(),
			Platform: c.Platform,
			Header:   &header,
			Prompt:   newPromptView(c.Prompt),
		}
	case core.Exit:
		code := c.Code
		return &commandView{Type: c.Kind(), Code: &code, Info: c.Info}
	case core.EndPage:
		return &commandView{Type: c.Kind()}
	default:
		return nil
	}
}

func newPromptView(p core.Prompt) *promptView {
	switch p := p.(type) {
	case core.FilePrompt:
		return &promptView{
			Type:        p.Kind(),
			Description: p.Description,
			Extensions:  p.Extensions,
		}
	case core.RetryPrompt:
		return &promptView{
			Type:        p.Kind(),
			Description: p.Description,
			Ok:          &p.Ok,
			Cancel:      &p.Cancel,
		}
	case core.ConsentPrompt:
		// An empty review still renders as an empty list.
		tables := p.Tables
		if tables == nil {
			tables = []core.Table{}
		}
		return &promptView{
			Type:        p.Kind(),
			ID:          p.ID,
			Description: p.Description,
			Tables:      &tables,
		}
	default:
		return nil
	}
}

func newPlatformView(p *core.Platform) platformView {
	return platformView{
		Key:        p.Key,
		Name:       p.Name,
		Extensions: p.Extensions,
		Tables:     len(p.Tables),
	}
}

// newSessionParams renders the session's current command for the HTML host.
func newSessionParams(v core.SessionView, lang string) templates.SessionParams {
	params := templates.SessionParams{
		Lang:     lang,
		Action:   "/donate/" + url.PathEscape(v.ID),
		Platform: v.Platform,
	}

	switch c := v.Command.(type) {
	case core.Page:
		params.Header = c.Header.Text(lang)
		switch p := c.Prompt.(type) {
		case core.FilePrompt:
			params.File = &templates.FileStep{
				Description: p.Description.Text(lang),
				Extensions:  p.Extensions,
			}
		case core.RetryPrompt:
			params.Retry = &templates.RetryStep{
				Description: p.Description.Text(lang),
				Ok:          p.Ok.Text(lang),
				Cancel:      p.Cancel.Text(lang),
			}
		case core.ConsentPrompt:
			step := &templates.ConsentStep{Description: p.Description.Text(lang)}
			for _, t := range p.Tables {
				step.Tables = append(step.Tables, newTableParams(t, lang))
			}
			params.Consent = step
		}
	case core.Exit:
		params.Exit = &templates.ExitStep{Info: c.Info}
	case core.EndPage:
		params.End = true
	}
	return params
}

func newTableParams(t core.Table, lang string) templates.TableParams {
	rows := t.Records
	if len(rows) > templates.MaxPreviewRows {
		rows = rows[:templates.MaxPreviewRows]
	}

	tp := templates.TableParams{
		Title:       t.Title.Text(lang),
		Description: t.Description.Text(lang),
		Columns:     t.Columns,
		Rows:        make([][]string, len(rows)),
		Total:       t.Len(),
	}
	for i, rec := range rows {
		tp.Rows[i] = rec
	}
	return tp
}
