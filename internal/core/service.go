package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for unknown or reaped session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrFlowFinished is returned when resuming a session whose flow has
	// already emitted its end page.
	ErrFlowFinished = errors.New("flow finished")

	// ErrUnexpectedResponse is returned when a response cannot answer the
	// session's current command.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("empty file")
)

// Defaults applied by NewService to zero config values.
const (
	DefaultMaxFileSize int64 = 512 << 20
	DefaultSessionTTL        = 30 * time.Minute
)

// ServiceConfig configures a Service. Zero values fall back to defaults.
type ServiceConfig struct {
	UploadDir            string        // Where archives are stored while validated (default: $TMPDIR/ddport-uploads)
	MaxFileSize          int64         // Largest accepted archive in bytes
	MaxConcurrentUploads int           // Parallel archive submissions
	MaxUploadWait        time.Duration // How long a submission waits for a slot
	SessionTTL           time.Duration // Idle time before a session is reaped
	Logger               *slog.Logger
}

// Service hosts donation sessions in memory.
type Service struct {
	cfg     ServiceConfig
	limiter *UploadLimiter
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu        sync.Mutex
	id        string
	flow      *Flow
	current   Command
	createdAt time.Time
	lastSeen  time.Time
}

// SessionView is a snapshot of a session.
type SessionView struct {
	ID        string
	Platform  string
	State     string
	Command   Command // Latest command emitted by the flow
	Done      bool
	Consent   *Response
	CreatedAt time.Time
	LastSeen  time.Time
}

// NewService creates a Service and its upload directory.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(os.TempDir(), "ddport-uploads")
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o700); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Service{
		cfg:      cfg,
		limiter:  NewUploadLimiter(cfg.MaxConcurrentUploads, cfg.MaxUploadWait),
		logger:   cfg.Logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}, nil
}

// StartSession creates a session for the platform registered under key and
// returns it with the flow's first command.
func (s *Service) StartSession(key string, opts ...FlowOption) (SessionView, error) {
	p, ok := GetPlatform(key)
	if !ok {
		return SessionView{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, key)
	}

	id := uuid.New().String()
	logger := s.logger.With("session_id", id, "platform", p.Key)
	opts = append([]FlowOption{WithLogger(logger)}, opts...)

	now := s.now()
	sess := &session{
		id:        id,
		flow:      NewFlow(p, id, opts...),
		createdAt: now,
		lastSeen:  now,
	}
	sess.current, _ = sess.flow.Next(Void())

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	logger.Info("session started")
	return sess.view(), nil
}

// Session returns a snapshot of the session.
func (s *Service) Session(id string) (SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Resume answers the session's current command and returns the next one.
// File paths cannot be passed here; use SubmitArchive.
func (s *Service) Resume(ctx context.Context, id string, resp Response) (SessionView, error) {
	if resp.Kind == PayloadString {
		return SessionView{}, fmt.Errorf("%w: string payloads are submitted as archives", ErrUnexpectedResponse)
	}

	sess, err := s.get(id)
	if err != nil {
		return SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return SessionView{}, err
	}
	if err := s.advance(sess, resp); err != nil {
		return SessionView{}, err
	}
	return sess.view(), nil
}

// SubmitArchive stores the archive read from r, feeds its path to the
// session's flow and removes it again once the flow has validated and
// extracted it.
func (s *Service) SubmitArchive(ctx context.Context, id string, r io.Reader) (SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionView{}, err
	}

	var view SessionView
	err = s.limiter.Do(ctx, func() error {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		if !sess.flow.AwaitingFile() {
			return fmt.Errorf("%w: session is not waiting for a file", ErrUnexpectedResponse)
		}

		path, err := s.store(r)
		if err != nil {
			return err
		}
		defer func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Warn("remove stored archive", "session_id", id, "error", err)
			}
		}()

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.advance(sess, String(path)); err != nil {
			return err
		}
		view = sess.view()
		return nil
	})
	if err != nil {
		return SessionView{}, err
	}
	return view, nil
}

// EndSession removes a session.
func (s *Service) EndSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// ActiveSessions returns the number of sessions held in memory.
func (s *Service) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// UploadStatus returns the upload limiter state.
func (s *Service) UploadStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// UploadDir returns the directory archives are stored in while a flow
// processes them.
func (s *Service) UploadDir() string {
	return s.cfg.UploadDir
}

// Shutdown waits for in-flight archive submissions to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// ReapIdle removes sessions not touched within the session TTL and returns
// how many were removed.
func (s *Service) ReapIdle() int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			reaped++
		}
	}
	return reaped
}

func (s *Service) get(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// advance must be called with sess.mu held.
func (s *Service) advance(sess *session, resp Response) error {
	if sess.flow.Done() {
		return ErrFlowFinished
	}
	cmd, ok := sess.flow.Next(resp)
	if !ok {
		return ErrFlowFinished
	}
	sess.current = cmd
	sess.lastSeen = s.now()
	return nil
}

func (s *Service) store(r io.Reader) (string, error) {
	f, err := os.CreateTemp(s.cfg.UploadDir, "ddp-*.zip")
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.cfg.MaxFileSize+1))
	closeErr := f.Close()

	switch {
	case err != nil:
		err = fmt.Errorf("write upload file: %w", err)
	case closeErr != nil:
		err = fmt.Errorf("close upload file: %w", closeErr)
	case n == 0:
		err = ErrEmptyFile
	case n > s.cfg.MaxFileSize:
		err = fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, s.cfg.MaxFileSize)
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (sess *session) view() SessionView {
	v := SessionView{
		ID:        sess.id,
		Platform:  sess.flow.Platform().Key,
		State:     sess.flow.State(),
		Command:   sess.current,
		Done:      sess.flow.Done(),
		CreatedAt: sess.createdAt,
		LastSeen:  sess.lastSeen,
	}
	if c, ok := sess.flow.Consent(); ok {
		v.Consent = &c
	}
	return v
}
