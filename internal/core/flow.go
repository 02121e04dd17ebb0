package core

import (
	"log/slog"

	"github.com/JonMunkholm/ddport/internal/ddp"
)

// ExitSuccess is the code of the Exit command ending every Flow.
const ExitSuccess = 0

type flowState int

const (
	stateStart flowState = iota
	stateAwaitFile
	stateAwaitRetry
	stateAwaitReview
	stateExited
	stateEnded
)

func (s flowState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateAwaitFile:
		return "await_file"
	case stateAwaitRetry:
		return "await_retry"
	case stateAwaitReview:
		return "await_review"
	case stateExited:
		return "exited"
	case stateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ValidateFunc validates the archive at path against manifests.
type ValidateFunc func(manifests []ddp.Manifest, path string) ddp.ValidationResult

// ExtractFunc extracts the review tables from the archive at path.
type ExtractFunc func(path string, specs []DisplaySpec, logger *slog.Logger) []Table

// Flow is the donation conversation for one platform.
//
// The first call to Next must pass the zero Response. Each following call
// passes the host's answer to the previously returned command. Next returns
// false once the end page has been emitted. A Flow is not safe for
// concurrent use.
type Flow struct {
	platform  *Platform
	sessionID string
	logger    *slog.Logger
	validate  ValidateFunc
	extract   ExtractFunc

	state      flowState
	validation ddp.ValidationResult
	tables     []Table
	extracted  bool
	consent    *Response
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithLogger sets the logger for flow events.
func WithLogger(l *slog.Logger) FlowOption {
	return func(f *Flow) { f.logger = l }
}

// WithValidator replaces ddp.ValidateZip.
func WithValidator(v ValidateFunc) FlowOption {
	return func(f *Flow) { f.validate = v }
}

// WithExtractor replaces AssembleZip.
func WithExtractor(e ExtractFunc) FlowOption {
	return func(f *Flow) { f.extract = e }
}

// NewFlow creates a Flow for platform p. sessionID prefixes the consent
// form identifier.
func NewFlow(p *Platform, sessionID string, opts ...FlowOption) *Flow {
	f := &Flow{
		platform:  p,
		sessionID: sessionID,
		logger:    slog.Default(),
		validate:  ddp.ValidateZip,
		extract:   AssembleZip,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Next consumes the answer to the previous command and returns the next one.
func (f *Flow) Next(resp Response) (Command, bool) {
	switch f.state {
	case stateStart:
		return f.promptFile(), true

	case stateAwaitFile:
		if resp.Kind != PayloadString {
			f.logger.Info("Skipped at file selection ending flow")
			return f.exit(), true
		}
		return f.submit(resp.Value), true

	case stateAwaitRetry:
		if resp.Kind == PayloadTrue {
			return f.promptFile(), true
		}
		f.logger.Info("Skipped during retry flow")
		return f.exit(), true

	case stateAwaitReview:
		r := resp
		f.consent = &r
		return f.exit(), true

	case stateExited:
		f.state = stateEnded
		return EndPage{}, true

	default:
		return nil, false
	}
}

// promptFile starts a new attempt. Results of earlier attempts are dropped.
func (f *Flow) promptFile() Command {
	f.validation = ddp.ValidationResult{}
	f.tables = nil
	f.extracted = false
	f.state = stateAwaitFile

	f.logger.Info("Prompt for file", "platform", f.platform.Name)
	return Page{
		Platform: f.platform.Name,
		Header:   f.platform.Texts.SubmitFileHeader,
		Prompt: FilePrompt{
			Description: fileDescription,
			Extensions:  f.platform.Extensions,
		},
	}
}

func (f *Flow) submit(path string) Command {
	f.logger.Info("Payload received", "platform", f.platform.Name)

	f.validation = f.validate(f.platform.Manifests, path)
	if f.validation.Valid() {
		f.tables = f.extract(path, f.platform.Tables, f.logger)
		f.extracted = true
	}

	if f.extracted {
		f.state = stateAwaitReview
		f.logger.Info("Prompt consent", "platform", f.platform.Name, "tables", len(f.tables))
		return Page{
			Platform: f.platform.Name,
			Header:   f.platform.Texts.ReviewHeader,
			Prompt: ConsentPrompt{
				ID:          f.ConsentID(),
				Description: f.platform.Texts.ReviewDescription,
				Tables:      f.Tables(),
			},
		}
	}

	f.logger.Info("Not a valid zip; prompt retry confirmation",
		"platform", f.platform.Name,
		"status", f.validation.StatusCode,
		"description", f.validation.Description,
	)
	f.state = stateAwaitRetry
	return Page{
		Platform: f.platform.Name,
		Header:   f.platform.Texts.RetryHeader,
		Prompt: RetryPrompt{
			Description: retryDescription(f.platform.Name),
			Ok:          retryOk,
			Cancel:      retryCancel,
		},
	}
}

func (f *Flow) exit() Command {
	f.state = stateExited
	return Exit{Code: ExitSuccess, Info: "Success"}
}

// ConsentID returns the identifier of the review form.
func (f *Flow) ConsentID() string {
	return f.sessionID + "-" + f.platform.Key
}

// Platform returns the flow's platform.
func (f *Flow) Platform() *Platform { return f.platform }

// State returns the name of the current state.
func (f *Flow) State() string { return f.state.String() }

// AwaitingFile reports whether the flow expects a file path next.
func (f *Flow) AwaitingFile() bool { return f.state == stateAwaitFile }

// Done reports whether the end page has been emitted.
func (f *Flow) Done() bool { return f.state == stateEnded }

// Validation returns the result of the latest validation attempt.
func (f *Flow) Validation() ddp.ValidationResult { return f.validation }

// Tables returns a copy of the tables extracted by the latest attempt.
func (f *Flow) Tables() []Table {
	return append([]Table(nil), f.tables...)
}

// Consent returns the answer given on the review page, if any.
func (f *Flow) Consent() (Response, bool) {
	if f.consent == nil {
		return Response{}, false
	}
	return *f.consent, true
}
