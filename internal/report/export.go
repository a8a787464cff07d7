package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// ExportResult contains the result of an export operation
type ExportResult struct {
	FilePath string
	Count    int // rows for correlations, domains for the matrix
	Err      error
}

// Export writes result to a timestamped file in dir
func Export(result grc.Result, format Format, kind Kind, dir string) ExportResult {
	return exportAt(result, format, kind, dir, time.Now())
}

func exportAt(result grc.Result, format Format, kind Kind, dir string, now time.Time) ExportResult {
	if format.Extension() == "" || kind.Slug() == "" {
		return ExportResult{Err: fmt.Errorf("%w: %d/%d", ErrUnknownFormat, format, kind)}
	}
	name := fmt.Sprintf("crosswalk_%s_%s%s", kind.Slug(), now.Format("2006-01-02_150405"), format.Extension())
	path := filepath.Join(dir, name)

	var count int
	var err error
	switch kind {
	case KindCorrelations:
		rows := FlatRows(result)
		count = len(rows)
		err = writeRows(rows, format, path, now, result)
	case KindCoverageMatrix:
		m := BuildMatrix(result.Summary)
		count = len(m.Domains)
		err = writeMatrix(m, format, path, now, result)
	}
	if err != nil {
		return ExportResult{Err: fmt.Errorf("export %s: %w", kind.Slug(), err)}
	}
	return ExportResult{FilePath: path, Count: count}
}

func writeRows(rows []Row, format Format, path string, now time.Time, result grc.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(path, struct {
			ExportedAt string `json:"exported_at"`
			Kind       string `json:"kind"`
			TotalCount int    `json:"total_count"`
			Rows       []Row  `json:"rows"`
		}{now.Format(time.RFC3339), KindCorrelations.Slug(), len(rows), rows})
	case FormatCSV:
		records := [][]string{rowHeader}
		for _, r := range rows {
			records = append(records, r.fields())
		}
		return writeCSV(path, records)
	default:
		return writeMarkdown(path, RenderMarkdown(result, KindCorrelations), now)
	}
}

func writeMatrix(m Matrix, format Format, path string, now time.Time, result grc.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(path, struct {
			ExportedAt string             `json:"exported_at"`
			Kind       string             `json:"kind"`
			Matrix     Matrix             `json:"matrix"`
			Findings   []model.GapFinding `json:"findings"`
		}{now.Format(time.RFC3339), KindCoverageMatrix.Slug(), m, result.Summary.Findings})
	case FormatCSV:
		header := []string{"Domain"}
		for _, fw := range m.Frameworks {
			header = append(header, string(fw))
		}
		records := [][]string{header}
		for i, d := range m.Domains {
			rec := []string{d}
			for _, c := range m.Cells[i] {
				rec = append(rec, CellText(c))
			}
			records = append(records, rec)
		}
		return writeCSV(path, records)
	default:
		return writeMarkdown(path, RenderMarkdown(result, KindCoverageMatrix), now)
	}
}

// createFile opens export targets; tests swap it to fail on close
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile hands a new file at path to write. A failed close is
// reported even when write succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filepath.Base(path), cerr)
		}
	}()
	return write(file)
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeCSV(path string, records [][]string) error {
	return writeFile(path, func(w io.Writer) error {
		return csv.NewWriter(w).WriteAll(records)
	})
}

func writeMarkdown(path, body string, now time.Time) error {
	footer := fmt.Sprintf("\n---\n\n*Generated by crosswalk on %s*\n", now.Format("2006-01-02 15:04:05"))
	return os.WriteFile(path, []byte(body+footer), 0o644)
}
