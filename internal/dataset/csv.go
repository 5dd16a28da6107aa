package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
)

// CSVLoader reads a delimited file with a header row.
type CSVLoader struct {
	path        string
	comma       rune
	textColumn  string
	labelColumn string
}

func (l *CSVLoader) Load() ([]Example, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.read(f)
}

func (l *CSVLoader) read(r io.Reader) ([]Example, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.Input("%s is empty", l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	textIdx, labelIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, l.textColumn):
			textIdx = i
		case strings.EqualFold(name, l.labelColumn):
			labelIdx = i
		}
	}
	if textIdx < 0 || labelIdx < 0 {
		return nil, errs.Input("%s: header must contain %q and %q columns, got %v", l.path, l.textColumn, l.labelColumn, header)
	}

	var examples []Example
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", l.path, line, err)
		}
		if textIdx >= len(record) || labelIdx >= len(record) {
			skipped++
			continue
		}
		ex, ok := newExample(record[textIdx], record[labelIdx])
		if !ok {
			skipped++
			continue
		}
		examples = append(examples, ex)
	}
	if skipped > 0 {
		logger.Debug("skipped incomplete dataset rows", "path", l.path, "skipped", skipped)
	}
	return examples, nil
}

func (l *CSVLoader) GetCurrentMtime() (int64, error) {
	return fileMtime(l.path)
}

func (l *CSVLoader) Path() string {
	return l.path
}

func (l *CSVLoader) Key() string {
	return datasetKey("csv", l.path)
}

func datasetKey(kind, path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return kind + ":" + path
}

// newExample trims both fields and rejects rows missing either.
func newExample(text, label string) (Example, bool) {
	text = strings.TrimSpace(text)
	label = strings.TrimSpace(label)
	if text == "" || label == "" {
		return Example{}, false
	}
	return Example{Text: text, Label: label}, true
}
