package core

import (
	"log/slog"

	"github.com/JonMunkholm/ddport/internal/ddp"
	"github.com/JonMunkholm/ddport/internal/extract"
)

// Assemble runs every spec's matcher against src and returns the non-empty
// tables in spec order. Members that are missing or unreadable are skipped.
func Assemble(src extract.Source, specs []DisplaySpec, logger *slog.Logger) []Table {
	e := extract.New(src, logger)

	tables := make([]Table, 0, len(specs))
	for _, spec := range specs {
		res := e.Extract(spec.Matcher)
		if res.Empty() {
			continue
		}
		tables = append(tables, Table{
			Name:           spec.Name,
			Title:          spec.Title,
			Description:    spec.Description,
			Columns:        res.Columns,
			Records:        res.Records,
			Shape:          res.Shape,
			Visualizations: append([]Visualization(nil), spec.Visualizations...),
		})
	}
	return tables
}

// AssembleZip opens the archive at p and assembles its tables.
// An archive that cannot be opened yields no tables.
func AssembleZip(p string, specs []DisplaySpec, logger *slog.Logger) []Table {
	if logger == nil {
		logger = slog.Default()
	}

	a, err := ddp.OpenArchive(p)
	if err != nil {
		logger.Error("open archive for extraction", "error", err)
		return []Table{}
	}
	defer a.Close()

	return Assemble(a, specs, logger)
}
