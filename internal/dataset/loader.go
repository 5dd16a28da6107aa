//go:generate mockgen -source=loader.go -destination=mock_loader.go -package=dataset
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/trknhr/tonecheck/internal/errs"
)

// Example is one labeled training document.
type Example struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type Format string

const (
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatJSONL Format = "jsonl"
)

// Loader reads a labeled dataset. Key and Path identify the dataset in the
// metadata store; GetCurrentMtime lets callers skip unchanged files.
type Loader interface {
	Load() ([]Example, error)
	GetCurrentMtime() (int64, error)
	Path() string
	Key() string
}

type Options struct {
	// Format overrides detection from the file extension and content.
	Format      Format
	TextColumn  string
	LabelColumn string
}

func (o *Options) applyDefaults() {
	if o.TextColumn == "" {
		o.TextColumn = "text"
	}
	if o.LabelColumn == "" {
		o.LabelColumn = "sentiment"
	}
}

// NewLoader returns a loader for path, choosing the format from opts, the
// file extension, or finally the file content.
func NewLoader(path string, opts Options) (Loader, error) {
	opts.applyDefaults()

	format := opts.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatCSV:
		return &CSVLoader{path: path, comma: ',', textColumn: opts.TextColumn, labelColumn: opts.LabelColumn}, nil
	case FormatTSV:
		return &CSVLoader{path: path, comma: '\t', textColumn: opts.TextColumn, labelColumn: opts.LabelColumn}, nil
	case FormatJSONL:
		return &JSONLLoader{path: path}, nil
	default:
		return nil, errs.Input("unsupported dataset format %q", format)
	}
}

func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect dataset format: %w", err)
	}
	switch {
	case mt.Is("application/x-ndjson"), mt.Is("application/json"):
		return FormatJSONL, nil
	case mt.Is("text/tab-separated-values"):
		return FormatTSV, nil
	default:
		return FormatCSV, nil
	}
}

func fileMtime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}
