package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps records in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveGeneration(ctx context.Context, record GenerationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	proposers, err := json.Marshal(record.ProposerCounts)
	if err != nil {
		return err
	}
	responders, err := json.Marshal(record.ResponderCounts)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (run_id, generation, plays, proposal_mean, proposal_stddev, accept_rate, proposer_counts, responder_counts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			plays = excluded.plays,
			proposal_mean = excluded.proposal_mean,
			proposal_stddev = excluded.proposal_stddev,
			accept_rate = excluded.accept_rate,
			proposer_counts = excluded.proposer_counts,
			responder_counts = excluded.responder_counts
	`, record.RunID, record.Generation, record.Plays, record.ProposalMean, record.ProposalStdDev,
		record.AcceptRate, string(proposers), string(responders))
	return err
}

func (s *SQLiteStore) GetHistory(ctx context.Context, runID string) ([]GenerationRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, plays, proposal_mean, proposal_stddev, accept_rate, proposer_counts, responder_counts
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []GenerationRecord
	for rows.Next() {
		r := GenerationRecord{RunID: runID}
		var proposers, responders string
		if err := rows.Scan(&r.Generation, &r.Plays, &r.ProposalMean, &r.ProposalStdDev, &r.AcceptRate, &proposers, &responders); err != nil {
			return nil, false, err
		}
		if err := json.Unmarshal([]byte(proposers), &r.ProposerCounts); err != nil {
			return nil, false, fmt.Errorf("decode proposer counts of run %s generation %d: %w", runID, r.Generation, err)
		}
		if err := json.Unmarshal([]byte(responders), &r.ResponderCounts); err != nil {
			return nil, false, fmt.Errorf("decode responder counts of run %s generation %d: %w", runID, r.Generation, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT run_id FROM generations ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			plays INTEGER NOT NULL,
			proposal_mean REAL NOT NULL,
			proposal_stddev REAL NOT NULL,
			accept_rate REAL NOT NULL,
			proposer_counts TEXT NOT NULL,
			responder_counts TEXT NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
