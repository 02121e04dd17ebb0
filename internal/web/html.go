package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/logging"
	"github.com/JonMunkholm/ddport/internal/web/templates"
)

// supportedLocales lists the page locales; the first is the fallback.
var supportedLocales = language.NewMatcher([]language.Tag{language.English, language.Dutch})

// localeFor picks the page locale from the lang query parameter, then
// Accept-Language.
func localeFor(r *http.Request) string {
	tag, _ := language.MatchStrings(supportedLocales, r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	base, _ := tag.Base()
	return base.String()
}

// writeHTML renders c with the given status.
func writeHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

func donationPath(id, lang string) string {
	return "/donate/" + url.PathEscape(id) + "?lang=" + url.QueryEscape(lang)
}

// handleStartDonation creates a session and redirects to its page. The
// platform query parameter selects the platform.
func (s *Server) handleStartDonation(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("platform")
	if key == "" {
		key = s.defaultPlatform
	}

	view, err := s.service.StartSession(key)
	if err != nil {
		respondPageError(w, r, err)
		return
	}

	_, logger := logging.WithSession(r.Context(), view.ID)
	logger.Info("session started", "platform", view.Platform, "host", "html")

	http.Redirect(w, r, donationPath(view.ID, localeFor(r)), http.StatusSeeOther)
}

func (s *Server) handleDonationPage(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondPageError(w, r, err)
		return
	}
	s.renderSession(w, r, view)
}

func (s *Server) handleDonateFile(w http.ResponseWriter, r *http.Request) {
	view, err := s.receiveArchive(w, r)
	if err != nil {
		respondPageError(w, r, err)
		return
	}
	s.answered(w, r, view)
}

func (s *Server) handleDonateSkip(w http.ResponseWriter, r *http.Request) {
	s.answerPage(w, r, core.Void())
}

func (s *Server) handleDonateRetry(w http.ResponseWriter, r *http.Request) {
	s.answerPage(w, r, core.Bool(r.PostFormValue("retry") == "true"))
}

func (s *Server) handleDonateContinue(w http.ResponseWriter, r *http.Request) {
	s.answerPage(w, r, core.Void())
}

// handleDonateConsent donates every reviewed table when decision is
// "donate" and declines otherwise.
func (s *Server) handleDonateConsent(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("decision") != "donate" {
		s.answerPage(w, r, core.Bool(false))
		return
	}

	view, err := s.service.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondPageError(w, r, err)
		return
	}
	prompt, ok := consentPromptOf(view.Command)
	if !ok {
		respondPageError(w, r, fmt.Errorf("%w: session is not in review", core.ErrUnexpectedResponse))
		return
	}
	resp, err := core.Donate(prompt)
	if err != nil {
		respondPageError(w, r, err)
		return
	}
	s.answerPage(w, r, resp)
}

func (s *Server) answerPage(w http.ResponseWriter, r *http.Request, resp core.Response) {
	view, err := s.service.Resume(r.Context(), chi.URLParam(r, "sessionID"), resp)
	if err != nil {
		respondPageError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Debug("session resumed",
		"payload", resp.Kind.String(),
		"state", view.State,
	)
	s.answered(w, r, view)
}

// answered swaps in the next step for HTMX and redirects plain form posts
// back to the session page.
func (s *Server) answered(w http.ResponseWriter, r *http.Request, view core.SessionView) {
	if isHTMX(r) {
		writeHTML(w, r, http.StatusOK, templates.SessionPartial(newSessionParams(view, localeFor(r))))
		return
	}
	http.Redirect(w, r, donationPath(view.ID, localeFor(r)), http.StatusSeeOther)
}

func (s *Server) renderSession(w http.ResponseWriter, r *http.Request, view core.SessionView) {
	params := newSessionParams(view, localeFor(r))
	if isHTMX(r) {
		writeHTML(w, r, http.StatusOK, templates.SessionPartial(params))
		return
	}
	writeHTML(w, r, http.StatusOK, templates.SessionPage(params))
}

func consentPromptOf(cmd core.Command) (core.ConsentPrompt, bool) {
	page, ok := cmd.(core.Page)
	if !ok {
		return core.ConsentPrompt{}, false
	}
	prompt, ok := page.Prompt.(core.ConsentPrompt)
	return prompt, ok
}
