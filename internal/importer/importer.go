package importer

import (
	"io"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

type Format string

const (
	FormatEntries Format = "entries"
)

type Importer interface {
	Parse(r io.Reader) ([]entry.CreateParams, error)
}
