// Package history keeps per-generation statistics of bargaining runs so they
// can be compared across runs. It never stores population state.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/baldhumanity/ultimatum-go/ultimatum"
)

// GenerationRecord is one row of a run's history.
type GenerationRecord struct {
	RunID           string
	Generation      int
	Plays           int
	ProposalMean    float64
	ProposalStdDev  float64
	AcceptRate      float64
	ProposerCounts  map[string]int
	ResponderCounts map[string]int
}

// Store persists generation records keyed by run id and generation.
type Store interface {
	Init(ctx context.Context) error
	SaveGeneration(ctx context.Context, record GenerationRecord) error
	GetHistory(ctx context.Context, runID string) ([]GenerationRecord, bool, error)
	ListRuns(ctx context.Context) ([]string, error)
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// FromGeneration converts an engine statistics entry into a record.
func FromGeneration(runID string, g ultimatum.GenerationStats) GenerationRecord {
	return GenerationRecord{
		RunID:           runID,
		Generation:      g.Generation,
		Plays:           g.Plays,
		ProposalMean:    g.ProposalMean,
		ProposalStdDev:  g.ProposalStdDev,
		AcceptRate:      g.AcceptRate,
		ProposerCounts:  g.ProposerCounts,
		ResponderCounts: g.ResponderCounts,
	}
}

// SaveStatistics stores every generation of stats under runID.
func SaveStatistics(ctx context.Context, store Store, runID string, stats *ultimatum.Statistics) error {
	for _, g := range stats.All() {
		if err := store.SaveGeneration(ctx, FromGeneration(runID, g)); err != nil {
			return fmt.Errorf("save generation %d of run %s: %w", g.Generation, runID, err)
		}
	}
	return nil
}

// NewStore builds a store by backend name: "memory" (or empty) or "sqlite".
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
