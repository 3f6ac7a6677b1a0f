// Package table holds the immutable entity x dimension score matrix that every
// chart is drawn from.
package table

import (
	"fmt"
	"math"
	"strings"
)

// Table is a rectangular score matrix. Rows are entities (e.g. students),
// columns are dimensions (e.g. subjects). A Table never changes after New;
// accessors hand out copies.
type Table struct {
	indexName  string
	entities   []string
	dimensions []string
	scores     [][]float64
	rowIndex   map[string]int
}

// Option applies a configuration option to a Table under construction.
type Option func(*Table)

// WithIndexName records the header of the entity column, e.g. "Student".
func WithIndexName(name string) Option {
	return func(t *Table) {
		t.indexName = strings.TrimSpace(name)
	}
}

// New validates and copies the given labels and scores into a Table.
// scores[i][j] is the score of entities[i] on dimensions[j].
func New(entities, dimensions []string, scores [][]float64, opts ...Option) (*Table, error) {
	if len(scores) != len(entities) {
		return nil, fmt.Errorf("%w: %d rows for %d entities", ErrShape, len(scores), len(entities))
	}
	if err := checkLabels("entity", entities); err != nil {
		return nil, err
	}
	if err := checkLabels("dimension", dimensions); err != nil {
		return nil, err
	}

	t := &Table{
		entities:   append([]string(nil), entities...),
		dimensions: append([]string(nil), dimensions...),
		scores:     make([][]float64, len(scores)),
		rowIndex:   make(map[string]int, len(entities)),
	}
	for i, row := range scores {
		if len(row) != len(dimensions) {
			return nil, fmt.Errorf("%w: row %q has %d values for %d dimensions", ErrShape, entities[i], len(row), len(dimensions))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %q/%q is not finite", ErrValue, entities[i], dimensions[j])
			}
		}
		t.scores[i] = append([]float64(nil), row...)
		t.rowIndex[entities[i]] = i
	}

	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func checkLabels(kind string, labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for i, l := range labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%w: empty %s label at position %d", ErrLabel, kind, i)
		}
		// CSV reading trims cells, so padded labels would not survive a round trip.
		if l != strings.TrimSpace(l) {
			return fmt.Errorf("%w: %s %q has surrounding whitespace", ErrLabel, kind, l)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%w: duplicate %s %q", ErrLabel, kind, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// IndexName returns the header of the entity column, possibly empty.
func (t *Table) IndexName() string { return t.indexName }

// Entities returns the entity identifiers in row order.
func (t *Table) Entities() []string { return append([]string(nil), t.entities...) }

// Dimensions returns the dimension identifiers in column order.
func (t *Table) Dimensions() []string { return append([]string(nil), t.dimensions...) }

// NumEntities returns the row count.
func (t *Table) NumEntities() int { return len(t.entities) }

// NumDimensions returns the column count.
func (t *Table) NumDimensions() int { return len(t.dimensions) }

// Index returns the row position of entity, or -1.
func (t *Table) Index(entity string) int {
	i, ok := t.rowIndex[entity]
	if !ok {
		return -1
	}
	return i
}

// Row returns a copy of the scores of entity.
func (t *Table) Row(entity string) ([]float64, error) {
	i := t.Index(entity)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return t.RowAt(i), nil
}

// RowAt returns a copy of the scores at row i. It panics when i is out of range.
func (t *Table) RowAt(i int) []float64 {
	return append([]float64(nil), t.scores[i]...)
}

// Column returns a copy of every entity's score on dimension j.
func (t *Table) Column(j int) []float64 {
	col := make([]float64, len(t.scores))
	for i, row := range t.scores {
		col[i] = row[j]
	}
	return col
}

// Values returns a deep copy of the score matrix.
func (t *Table) Values() [][]float64 {
	out := make([][]float64, len(t.scores))
	for i := range t.scores {
		out[i] = t.RowAt(i)
	}
	return out
}

// Head returns a table holding the first n rows (all rows when n exceeds the
// row count).
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.entities) {
		n = len(t.entities)
	}
	// Rows are already validated, so New cannot fail here.
	head, _ := New(t.entities[:n], t.dimensions, t.scores[:n], WithIndexName(t.indexName))
	return head
}
