package sosi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/gpx2sosi/internal/apperr"
)

func TestOutputName(t *testing.T) {
	assert.Equal(t, "hello.gpx.sos", OutputName("data/hello.gpx", ".sos"))
	assert.Equal(t, "hello.gpx.sos", OutputName("hello.gpx", ".sos"))
	assert.Equal(t, "trase.gpx.sos", OutputName("/srv/in/2024/trase.gpx", ".sos"))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	doc, err := Assemble(twoPoints, testHeader, testObject)
	require.NoError(t, err)

	// an existing file is replaced
	stale := filepath.Join(dir, "hello.gpx.sos")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	path, err := Write(doc, "data/hello.gpx", dir, ".sos")
	require.NoError(t, err)
	assert.Equal(t, stale, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, twoPointsDocument, string(data))
}

func TestWrite_MissingDir(t *testing.T) {
	doc := &Document{Header: ".HODE 0:\n"}
	dir := filepath.Join(t.TempDir(), "sosi")

	_, err := Write(doc, "hello.gpx", dir, ".sos")
	assert.ErrorIs(t, err, apperr.ErrIO)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWrite_DirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sosi")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Write(&Document{}, "hello.gpx", file, ".sos")
	assert.ErrorIs(t, err, apperr.ErrIO)
}
