// Package packaging bundles instrument artifacts into a downloadable zip
// and inspects existing packages.
package packaging

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/schulkompass/surveykit/internal/survey"
)

// ErrIncompleteBundle is returned when a required artifact is missing or
// empty.
var ErrIncompleteBundle = errors.New("bundle is missing a required artifact")

// Canonical entry names inside a package.
const (
	EntryForm         = "befragung.html"
	EntrySheet        = "auswertung_template.xlsx"
	EntryQR           = "qr_code.png"
	EntryInstructions = "anleitung_lehrer.pdf"
	EntryAppsScript   = "google_apps_script.txt"
	EntryReadme       = "README.md"
)

// Build assembles the archive. Entries are written in fixed order; the zip
// format embeds modification timestamps, so two builds of the same bundle
// are logically but not byte-for-byte identical.
func Build(b survey.Bundle, extras map[string][]byte) ([]byte, error) {
	required := []struct {
		name string
		data []byte
	}{
		{EntryForm, b.FormHTML},
		{EntrySheet, b.SheetXLSX},
		{EntryQR, b.QRPNG},
		{EntryInstructions, b.InstructionsPDF},
	}
	for _, r := range required {
		if len(r.data) == 0 {
			return nil, fmt.Errorf("%s: %w", r.name, ErrIncompleteBundle)
		}
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	write := func(name string, data []byte) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	for _, r := range required {
		if err := write(r.name, r.data); err != nil {
			return nil, err
		}
	}
	if len(b.AppsScript) > 0 {
		if err := write(EntryAppsScript, b.AppsScript); err != nil {
			return nil, err
		}
	}
	if len(b.Readme) > 0 {
		if err := write(EntryReadme, b.Readme); err != nil {
			return nil, err
		}
	}

	// caller-provided extras, sorted for a stable entry order
	names := make([]string, 0, len(extras))
	for name := range extras {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := write(name, extras[name]); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Entry describes one archive member.
type Entry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Inspect lists the members of a package archive.
func Inspect(data []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	out := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		out = append(out, Entry{Name: f.Name, Size: int64(f.UncompressedSize64)})
	}
	return out, nil
}

// Extract reads one member of a package archive.
func Extract(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found", name)
}
