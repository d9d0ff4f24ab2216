package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/importer/csvfile"
)

type Service struct {
	entriesImporter Importer
}

func NewService() *Service {
	return &Service{
		entriesImporter: csvfile.NewParser(),
	}
}

func ParseFormat(s string) (Format, error) {
	if s == "" || Format(s) == FormatEntries {
		return FormatEntries, nil
	}

	return "", fmt.Errorf("unknown import format: %s", s)
}

func (s *Service) Import(format Format, r io.Reader) ([]entry.CreateParams, error) {
	var importer Importer

	switch format {
	case FormatEntries:
		importer = s.entriesImporter
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return importer.Parse(r)
}
