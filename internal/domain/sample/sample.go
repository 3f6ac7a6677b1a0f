// Package sample synthesizes a reproducible student performance table for
// demos and for runs started without an input file.
package sample

import (
	"math/rand"

	"github.com/okian/radar/internal/domain/table"
)

// Constants for score generation.
const (
	// DefaultSeed keeps the sample data stable across runs.
	DefaultSeed = 42
	scoreMin    = 60
	scoreMax    = 100 // exclusive
	indexName   = "Student"
)

// Subjects are the fixed sample dimensions.
var Subjects = []string{"Math", "English", "Chinese", "Science", "History", "Art"} //nolint:gochecknoglobals // fixed sample vocabulary

// Students are the fixed sample entities.
var Students = []string{"Alice", "Bob", "Charlie", "Diana", "Eve"} //nolint:gochecknoglobals // fixed sample vocabulary

// Generate returns the sample table for seed.
func Generate(seed int64) *table.Table {
	t, err := GenerateWith(seed, Students, Subjects)
	if err != nil {
		// The fixed vocabulary is valid; reaching this is a programming error.
		panic(err)
	}
	return t
}

// GenerateWith fills an entities x dimensions table with integer scores drawn
// uniformly from [60, 100), row by row, from a source seeded with seed.
func GenerateWith(seed int64, entities, dimensions []string) (*table.Table, error) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible sample data

	scores := make([][]float64, len(entities))
	for i := range entities {
		row := make([]float64, len(dimensions))
		for j := range dimensions {
			row[j] = float64(scoreMin + rng.Intn(scoreMax-scoreMin))
		}
		scores[i] = row
	}
	return table.New(entities, dimensions, scores, table.WithIndexName(indexName))
}
