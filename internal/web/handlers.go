package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/logging"
)

// multipartOverhead is the allowance for multipart headers and boundaries
// on top of the archive size limit.
const multipartOverhead = 1 << 20

type healthResponse struct {
	Status   string                   `json:"status"`
	Sessions int                      `json:"sessions"`
	Uploads  core.UploadLimiterStatus `json:"uploads"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.service.ActiveSessions(),
		Uploads:  s.service.UploadStatus(),
	})
}

func (s *Server) handleListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms := core.Platforms()
	views := make([]platformView, 0, len(platforms))
	for _, p := range platforms {
		views = append(views, newPlatformView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

type startSessionRequest struct {
	Platform string `json:"platform"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if req.Platform == "" {
		req.Platform = s.defaultPlatform
	}

	view, err := s.service.StartSession(req.Platform)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	_, logger := logging.WithSession(r.Context(), view.ID)
	logger.Info("session started", "platform", view.Platform)

	writeJSON(w, http.StatusCreated, newSessionResponse(view))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(view))
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.service.EndSession(chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("session ended")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitFile(w http.ResponseWriter, r *http.Request) {
	view, err := s.receiveArchive(w, r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(view))
}

// receiveArchive streams the "file" part of a multipart upload into the
// session without buffering it in memory.
func (s *Server) receiveArchive(w http.ResponseWriter, r *http.Request) (core.SessionView, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		return core.SessionView{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return core.SessionView{}, errNoFile
		}
		if err != nil {
			return core.SessionView{}, uploadError(err)
		}
		if part.FormName() != "file" {
			part.Close()
			continue
		}

		view, err := s.service.SubmitArchive(r.Context(), chi.URLParam(r, "sessionID"), part)
		part.Close()
		if err != nil {
			return core.SessionView{}, uploadError(err)
		}

		logging.WithFields(r.Context(), "filename", part.FileName()).Info("archive submitted", "state", view.State)
		return view, nil
	}
}

// uploadError reports a body cut off by MaxBytesReader as a size error.
func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: %v", core.ErrFileTooLarge, err)
	}
	return err
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.resume(w, r, core.Void())
}

type retryRequest struct {
	Retry bool `json:"retry"`
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	var req retryRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.resume(w, r, core.Bool(req.Retry))
}

// handleConsent passes the request body through as the participant's
// consent decision.
func (s *Server) handleConsent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize))
	if err != nil {
		respondServiceError(w, r, uploadError(err))
		return
	}
	if !json.Valid(body) {
		respondServiceError(w, r, fmt.Errorf("%w: consent must be JSON", errInvalidBody))
		return
	}
	s.resume(w, r, core.JSON(string(body)))
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.resume(w, r, core.Void())
}

func (s *Server) resume(w http.ResponseWriter, r *http.Request, resp core.Response) {
	view, err := s.service.Resume(r.Context(), chi.URLParam(r, "sessionID"), resp)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("session resumed",
		"payload", resp.Kind.String(),
		"state", view.State,
	)
	writeJSON(w, http.StatusOK, newSessionResponse(view))
}

// decodeOptionalJSON decodes the request body into v; an empty body leaves
// v untouched.
func decodeOptionalJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}
