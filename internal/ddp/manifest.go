package ddp

import "slices"

// Filetype is the dominant file format inside an export.
type Filetype string

const (
	FiletypeJSON Filetype = "JSON"
	FiletypeHTML Filetype = "HTML"
	FiletypeCSV  Filetype = "CSV"
	FiletypeTXT  Filetype = "TXT"
)

// Language is the locale the platform wrote the export in.
type Language string

const (
	LanguageEN Language = "en"
	LanguageNL Language = "nl"
)

// Manifest declares one category of a platform's export.
// The known file list is fixed at construction and handed out as copies.
type Manifest struct {
	ID       string
	Filetype Filetype
	Language Language

	knownFiles []string
}

// NewManifest creates a manifest. Duplicate file names are dropped, first
// occurrence wins.
func NewManifest(id string, filetype Filetype, language Language, knownFiles ...string) Manifest {
	files := make([]string, 0, len(knownFiles))
	for _, f := range knownFiles {
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}
	return Manifest{
		ID:         id,
		Filetype:   filetype,
		Language:   language,
		knownFiles: files,
	}
}

// KnownFiles returns the expected member file names in declaration order.
func (m Manifest) KnownFiles() []string {
	return slices.Clone(m.knownFiles)
}

// prevalence returns the percentage of known files present in names.
func (m Manifest) prevalence(names map[string]bool) float64 {
	if len(m.knownFiles) == 0 {
		return 0
	}
	found := 0
	for _, f := range m.knownFiles {
		if names[f] {
			found++
		}
	}
	return float64(found) * 100 / float64(len(m.knownFiles))
}
