package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/trknhr/tonecheck/internal/logger"
)

// JSONLLoader reads one {"text": ..., "label": ...} object per line.
// "sentiment" is accepted in place of "label".
type JSONLLoader struct {
	path string
}

type jsonlRecord struct {
	Text      string `json:"text"`
	Label     string `json:"label"`
	Sentiment string `json:"sentiment"`
}

func (l *JSONLLoader) Load() ([]Example, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var examples []Example
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", l.path, line, err)
		}
		label := rec.Label
		if label == "" {
			label = rec.Sentiment
		}
		ex, ok := newExample(rec.Text, label)
		if !ok {
			skipped++
			continue
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.Debug("skipped incomplete dataset rows", "path", l.path, "skipped", skipped)
	}
	return examples, nil
}

func (l *JSONLLoader) GetCurrentMtime() (int64, error) {
	return fileMtime(l.path)
}

func (l *JSONLLoader) Path() string {
	return l.path
}

func (l *JSONLLoader) Key() string {
	return datasetKey("jsonl", l.path)
}
