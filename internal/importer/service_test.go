package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/buku/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	params, err := svc.Import(importer.FormatEntries, strings.NewReader("Date,Type,Category,Amount\n2024-01-01,income,daily,99\n"))
	require.NoError(t, err)
	require.Len(t, params, 1)

	_, err = svc.Import("ofx", strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := importer.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, importer.FormatEntries, f)

	_, err = importer.ParseFormat("qif")
	assert.Error(t, err)
}
