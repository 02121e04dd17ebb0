package ddp

// validate.go decides whether a submitted archive is a DDP of a declared
// platform category.
//
// Detection works on member base names only. For every manifest the
// prevalence (share of its known files present in the archive) is computed;
// the manifest with the highest prevalence wins if it clears
// DetectionThreshold. Content is never inspected here; parsing problems are
// the extractors' business.

import (
	"path"
	"slices"
	"strings"
)

// Status codes reported by ValidateZip.
const (
	StatusValid               = 0
	StatusNotValid            = 1
	StatusBadZip              = 2
	StatusUnsupportedFiletype = 3
)

var statusDescriptions = map[int]string{
	StatusValid:               "Valid DDP",
	StatusNotValid:            "Not a valid DDP",
	StatusBadZip:              "Bad zipfile",
	StatusUnsupportedFiletype: "Unsupported DDP filetype",
}

// DetectionThreshold is the minimum prevalence (percent) for a manifest match.
var DetectionThreshold = 5.0

// DataSuffixes lists the member suffixes considered during detection.
var DataSuffixes = []string{".json", ".txt", ".csv", ".html", ".js"}

// SupportedFiletypes lists the manifest filetypes accepted as valid.
var SupportedFiletypes = []Filetype{FiletypeJSON, FiletypeHTML, FiletypeTXT}

// ValidationResult is the outcome of one validation attempt.
type ValidationResult struct {
	StatusCode  int
	Description string
	Manifest    *Manifest // matched manifest, nil if none
	Prevalence  float64   // percent of the matched manifest's files present
}

// Valid reports whether the archive matched a supported manifest.
func (v ValidationResult) Valid() bool {
	return v.StatusCode == StatusValid
}

func newResult(code int) ValidationResult {
	return ValidationResult{StatusCode: code, Description: statusDescriptions[code]}
}

// ValidateZip validates the archive at p against manifests.
func ValidateZip(manifests []Manifest, p string) ValidationResult {
	a, err := OpenArchive(p)
	if err != nil {
		return newResult(StatusBadZip)
	}
	defer a.Close()

	return ValidateArchive(manifests, a)
}

// ValidateArchive validates an already opened archive against manifests.
func ValidateArchive(manifests []Manifest, a *Archive) ValidationResult {
	names := make(map[string]bool)
	for _, name := range a.Names() {
		if isDataFile(name) {
			names[name] = true
		}
	}

	var best *Manifest
	bestScore := 0.0
	for i := range manifests {
		score := manifests[i].prevalence(names)
		if score > bestScore {
			best = &manifests[i]
			bestScore = score
		}
	}

	if best == nil || bestScore <= DetectionThreshold {
		return newResult(StatusNotValid)
	}

	matched := *best
	if !slices.Contains(SupportedFiletypes, matched.Filetype) {
		res := newResult(StatusUnsupportedFiletype)
		res.Manifest = &matched
		res.Prevalence = bestScore
		return res
	}

	res := newResult(StatusValid)
	res.Manifest = &matched
	res.Prevalence = bestScore
	return res
}

func isDataFile(name string) bool {
	return slices.Contains(DataSuffixes, strings.ToLower(path.Ext(name)))
}
