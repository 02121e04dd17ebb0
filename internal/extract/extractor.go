package extract

import (
	"errors"
	"log/slog"

	"github.com/JonMunkholm/ddport/internal/ddp"
)

// Source reads decoded member text. *ddp.Archive satisfies it.
type Source interface {
	ReadText(name string) (string, error)
}

// Extractor runs matchers against one source.
//
// Extraction never fails: a member that is missing or cannot be decoded is
// logged and produces an empty Result, and the remaining members are still
// parsed.
type Extractor struct {
	src    Source
	logger *slog.Logger
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(src Source, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{src: src, logger: logger}
}

// Extract parses the member described by m.
func (e *Extractor) Extract(m *Matcher) Result {
	text, err := e.src.ReadText(m.Member())
	if err != nil {
		if errors.Is(err, ddp.ErrMemberNotFound) {
			e.logger.Warn("member not in archive", "member", m.Member())
		} else {
			e.logger.Error("read member", "member", m.Member(), "error", err)
		}
		return Result{
			Member:  m.Member(),
			Columns: m.Columns(),
			Shape:   m.Shape(),
			Err:     err,
		}
	}

	res := m.Match(text)
	e.logger.Debug("member parsed", "member", m.Member(), "records", res.Len())
	return res
}

// ExtractAll parses every matcher in order and returns one Result each.
func (e *Extractor) ExtractAll(matchers []*Matcher) []Result {
	results := make([]Result, len(matchers))
	for i, m := range matchers {
		results[i] = e.Extract(m)
	}
	return results
}
