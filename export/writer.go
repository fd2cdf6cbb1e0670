package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/salience/analysis"
)

// utf8BOM is prepended to every artifact so spreadsheet applications
// detect UTF-8 (the "utf-8-sig" convention).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteMatrix writes a matrix as delimited text: a BOM, a header row
// of the term columns, then one row per period in fixed bucket order.
func WriteMatrix(w io.Writer, m analysis.Matrix, format Format) error {
	info, ok := GetFormatInfo(format)
	if !ok {
		return fmt.Errorf("unknown export format: %q", format)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = info.Delimiter

	header := append([]string{""}, m.Terms...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, 1+m.Cols())
	for i, p := range m.Periods {
		row[0] = p.String()
		for j := 0; j < m.Cols(); j++ {
			row[1+j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", p, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMatrixFile writes a matrix to path, creating parent directories.
func WriteMatrixFile(path string, m analysis.Matrix, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteMatrix(f, m, format); err != nil {
		return err
	}
	return f.Close()
}

// Manifest describes one completed run and its artifacts.
type Manifest struct {
	RunID          string         `yaml:"run_id"`
	StartedAt      time.Time      `yaml:"started_at"`
	Duration       string         `yaml:"duration"`
	TotalDocuments int            `yaml:"total_documents"`
	DocumentCounts map[string]int `yaml:"document_counts"`
	Vocabulary     []string       `yaml:"vocabulary"`
	Files          []string       `yaml:"files"`
}

// WriteRunArtifacts writes the four matrices of a run plus a run.yaml
// manifest into dir. File names follow the reference analysis:
// period_top<N>_{sumTFIDF,sum_zscore,meanTFIDF,mean_zscore}.
func WriteRunArtifacts(dir string, result *analysis.Result, format Format) ([]string, error) {
	info, ok := GetFormatInfo(format)
	if !ok {
		return nil, fmt.Errorf("unknown export format: %q", format)
	}

	n := len(result.Vocabulary)
	artifacts := []struct {
		stem   string
		matrix analysis.Matrix
	}{
		{fmt.Sprintf("period_top%d_sumTFIDF", n), result.Sum},
		{fmt.Sprintf("period_top%d_sum_zscore", n), result.ZSum},
		{fmt.Sprintf("period_top%d_meanTFIDF", n), result.Mean},
		{fmt.Sprintf("period_top%d_mean_zscore", n), result.ZMean},
	}

	files := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.stem+info.Extension)
		if err := WriteMatrixFile(path, a.matrix, format); err != nil {
			return nil, err
		}
		files = append(files, path)
	}

	manifest := Manifest{
		RunID:          result.RunID,
		StartedAt:      result.StartedAt,
		Duration:       result.Duration.String(),
		TotalDocuments: result.TotalDocuments,
		DocumentCounts: result.DocumentCounts,
		Vocabulary:     result.Vocabulary,
		Files:          files,
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return append(files, manifestPath), nil
}
