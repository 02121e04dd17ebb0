package core

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/JonMunkholm/ddport/internal/ddp"
)

// ErrUnknownPlatform is returned when no platform is registered under a key.
var ErrUnknownPlatform = errors.New("unknown platform")

// DefaultExtensions is the file prompt's accepted MIME type list.
const DefaultExtensions = "application/zip"

// Platform is a donation-capable data source.
type Platform struct {
	Key        string // Registry key: "tiktok"
	Name       string // Display name: "TikTok"
	Manifests  []ddp.Manifest
	Extensions string // Accepted by the file prompt (default "application/zip")
	Tables     []DisplaySpec
	Texts      PageTexts
}

// Validate checks that the platform definition is complete.
func (p *Platform) Validate() error {
	if p.Key == "" {
		return errors.New("platform key is required")
	}
	if p.Name == "" {
		return fmt.Errorf("platform %s: name is required", p.Key)
	}
	if len(p.Manifests) == 0 {
		return fmt.Errorf("platform %s: at least one manifest is required", p.Key)
	}

	texts := map[string]Translatable{
		"submit file header": p.Texts.SubmitFileHeader,
		"review header":      p.Texts.ReviewHeader,
		"review description": p.Texts.ReviewDescription,
		"retry header":       p.Texts.RetryHeader,
	}
	for name, t := range texts {
		if err := checkLocales(t); err != nil {
			return fmt.Errorf("platform %s: %s: %w", p.Key, name, err)
		}
	}

	seen := make(map[string]bool, len(p.Tables))
	for _, spec := range p.Tables {
		if spec.Name == "" {
			return fmt.Errorf("platform %s: table name is required", p.Key)
		}
		if seen[spec.Name] {
			return fmt.Errorf("platform %s: duplicate table %s", p.Key, spec.Name)
		}
		seen[spec.Name] = true

		if spec.Matcher == nil {
			return fmt.Errorf("platform %s: table %s has no matcher", p.Key, spec.Name)
		}
		if err := checkLocales(spec.Title); err != nil {
			return fmt.Errorf("platform %s: table %s title: %w", p.Key, spec.Name, err)
		}
		if err := checkLocales(spec.Description); err != nil {
			return fmt.Errorf("platform %s: table %s description: %w", p.Key, spec.Name, err)
		}
		cols := spec.Matcher.Columns()
		for _, v := range spec.Visualizations {
			if !slices.Contains(cols, v.TextColumn) {
				return fmt.Errorf("platform %s: table %s: visualization column %q not in %v",
					p.Key, spec.Name, v.TextColumn, cols)
			}
		}
	}
	return nil
}

func checkLocales(t Translatable) error {
	for _, l := range RequiredLocales {
		if !t.Has(l) {
			return fmt.Errorf("missing %q translation", l)
		}
	}
	return nil
}

var (
	platforms   = make(map[string]*Platform)
	platformsMu sync.RWMutex
)

// RegisterPlatform adds a platform to the registry.
// Panics if the definition is invalid or the key is already registered.
func RegisterPlatform(p Platform) {
	if p.Extensions == "" {
		p.Extensions = DefaultExtensions
	}
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}

	platformsMu.Lock()
	defer platformsMu.Unlock()

	if _, exists := platforms[p.Key]; exists {
		panic(fmt.Sprintf("platform already registered: %s", p.Key))
	}
	platforms[p.Key] = &p
}

// GetPlatform returns the platform registered under key.
// Returns false if not found.
func GetPlatform(key string) (*Platform, bool) {
	platformsMu.RLock()
	defer platformsMu.RUnlock()

	p, ok := platforms[key]
	return p, ok
}

// Platforms returns all registered platforms sorted by key.
func Platforms() []*Platform {
	platformsMu.RLock()
	defer platformsMu.RUnlock()

	result := make([]*Platform, 0, len(platforms))
	for _, p := range platforms {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// ClearPlatforms removes all registered platforms.
// Primarily useful for testing.
func ClearPlatforms() {
	platformsMu.Lock()
	defer platformsMu.Unlock()
	platforms = make(map[string]*Platform)
}
