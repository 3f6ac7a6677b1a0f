// Package csvtable reads and writes score tables as delimited text. The first
// column holds entity identifiers and the header row holds dimension
// identifiers.
package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/internal/domain/table"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0644
)

// Read parses a table from r.
func Read(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are reported with our own error kind
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrMalformed)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	dimensions := make([]string, len(header)-1)
	for i, h := range header[1:] {
		dimensions[i] = strings.TrimSpace(h)
	}

	var (
		entities []string
		scores   [][]float64
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformed, line, len(record), len(header))
		}

		row := make([]float64, len(dimensions))
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d column %q: %q is not a finite number", ErrMalformed, line, dimensions[j], cell)
			}
			row[j] = v
		}
		entities = append(entities, strings.TrimSpace(record[0]))
		scores = append(scores, row)
	}

	t, err := table.New(entities, dimensions, scores, table.WithIndexName(header[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return t, nil
}

// Write serializes t to w in the format Read accepts. Numbers use the
// shortest representation that parses back to the same value.
func Write(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(append([]string{t.IndexName()}, t.Dimensions()...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, entity := range t.Entities() {
		record := make([]string, 0, t.NumDimensions()+1)
		record = append(record, entity)
		for _, v := range t.RowAt(i) {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %q: %w", entity, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Load reads the table stored at path.
func Load(path string) (*table.Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes t to path, creating parent directories and replacing any
// existing file.
func Save(path string, t *table.Table) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()
	return Write(f, t)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	sampleFallback bool
}

// WithSampleFallback makes Resolve synthesize sample data when path does not
// exist instead of failing with ErrNotFound.
func WithSampleFallback() ResolveOption {
	return func(o *resolveOptions) {
		o.sampleFallback = true
	}
}

// Resolve turns an optional source path into a table. An empty path yields
// the sample table for seed. A missing path fails with ErrNotFound unless
// WithSampleFallback is given.
func Resolve(path string, seed int64, opts ...ResolveOption) (*table.Table, error) {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(path) == "" {
		return sample.Generate(seed), nil
	}
	t, err := Load(path)
	if errors.Is(err, ErrNotFound) && o.sampleFallback {
		return sample.Generate(seed), nil
	}
	return t, err
}
