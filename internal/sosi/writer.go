package sosi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/woozymasta/gpx2sosi/internal/apperr"
)

// OutputName derives the output file name from the input path:
// "data/hello.gpx" with ".sos" gives "hello.gpx.sos".
func OutputName(inputPath, ext string) string {
	return filepath.Base(inputPath) + ext
}

// Write stores the document in dir under OutputName and returns the path.
// dir must already exist. An existing file is overwritten.
func Write(doc *Document, inputPath, dir, ext string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", apperr.IO("stat output dir", err)
	}
	if !info.IsDir() {
		return "", apperr.IO("stat output dir", fmt.Errorf("%s is not a directory", dir))
	}

	path := filepath.Join(dir, OutputName(inputPath, ext))
	if err := os.WriteFile(path, doc.Bytes(), 0644); err != nil {
		return "", apperr.IO("write", err)
	}

	return path, nil
}
