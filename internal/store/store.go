package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/calebmrice/regulatory-mirror/internal/source"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS measurements (
	entity   TEXT NOT NULL,
	metric   TEXT NOT NULL,
	layer    TEXT NOT NULL DEFAULT '',
	value    REAL NOT NULL,
	PRIMARY KEY (entity, metric, layer)
);

CREATE TABLE IF NOT EXISTS diagnostic_runs (
	run_id       TEXT PRIMARY KEY,
	directive    TEXT NOT NULL,
	kind         TEXT NOT NULL,
	subject      TEXT,
	results_json TEXT,
	created_at   TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// Store keeps measurements and a diagnostic run log in SQLite. It
// satisfies source.Source and source.LayerSource, so the engine reads
// straight from it.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region put-measurement
// PutMeasurement upserts an aggregate score for an entity and metric.
// Values are normalized to [0, 1].
func (s *Store) PutMeasurement(entity, metric string, value float64) error {
	return s.put(entity, metric, "", value)
}

// PutLayerMeasurement upserts a per-layer score for an entity and metric.
func (s *Store) PutLayerMeasurement(entity, metric, layer string, value float64) error {
	if layer == "" {
		return fmt.Errorf("put measurement: empty layer name")
	}
	return s.put(entity, metric, layer, value)
}

func (s *Store) put(entity, metric, layer string, value float64) error {
	if entity == "" || metric == "" {
		return fmt.Errorf("put measurement: empty entity or metric")
	}
	if value < 0 || value > 1 {
		return fmt.Errorf("put measurement %s/%s: value %v outside [0, 1]", entity, metric, value)
	}
	_, err := s.db.Exec(
		`INSERT INTO measurements (entity, metric, layer, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT(entity, metric, layer) DO UPDATE SET value = excluded.value`,
		entity, metric, layer, value,
	)
	if err != nil {
		return fmt.Errorf("put measurement %s/%s: %w", entity, metric, err)
	}
	return nil
}
// #endregion put-measurement

// #region measure
// Measure reads the aggregate score for an entity and metric.
func (s *Store) Measure(entity, metric string) (float64, error) {
	return s.measure(entity, metric, "")
}

// MeasureLayer reads the per-layer score for an entity and metric.
func (s *Store) MeasureLayer(entity, metric, layer string) (float64, error) {
	return s.measure(entity, metric, layer)
}

func (s *Store) measure(entity, metric, layer string) (float64, error) {
	var value float64
	err := s.db.QueryRow(
		`SELECT value FROM measurements WHERE entity = ? AND metric = ? AND layer = ?`,
		entity, metric, layer,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, s.missErr(entity, metric, layer)
	}
	if err != nil {
		return 0, fmt.Errorf("measure %s/%s: %w", entity, metric, err)
	}
	return value, nil
}

// missErr distinguishes an unknown entity from an unknown metric or
// layer so callers get the same error kinds an in-memory source gives.
func (s *Store) missErr(entity, metric, layer string) error {
	var n int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM measurements WHERE entity = ?`, entity,
	).Scan(&n); err != nil {
		return fmt.Errorf("measure %s/%s: %w", entity, metric, err)
	}
	if n == 0 {
		return fmt.Errorf("measure %s/%s: %w", entity, metric, source.ErrUnknownEntity)
	}
	if layer == "" {
		return fmt.Errorf("measure %s/%s: %w", entity, metric, source.ErrUnknownMetric)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM measurements WHERE entity = ? AND metric = ?`, entity, metric,
	).Scan(&n); err != nil {
		return fmt.Errorf("measure %s/%s: %w", entity, metric, err)
	}
	if n == 0 {
		return fmt.Errorf("measure %s/%s: %w", entity, metric, source.ErrUnknownMetric)
	}
	return fmt.Errorf("measure %s/%s layer %s: %w", entity, metric, layer, source.ErrUnknownLayer)
}
// #endregion measure

// #region run-log
// RunRecord is one logged diagnostic execution.
type RunRecord struct {
	RunID     string
	Directive string
	Kind      string
	Subject   string
	Results   json.RawMessage
	CreatedAt time.Time
}

// LogRun appends a diagnostic execution to the run log. A missing
// RunID or CreatedAt is filled in.
func (s *Store) LogRun(rec RunRecord) (RunRecord, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO diagnostic_runs (run_id, directive, kind, subject, results_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Directive, rec.Kind, nullIfEmpty(rec.Subject),
		nullIfEmpty(string(rec.Results)), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("log run: %w", err)
	}
	return rec, nil
}

// GetRun retrieves a logged run by ID.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT run_id, directive, kind, subject, results_json, created_at
		 FROM diagnostic_runs WHERE run_id = ?`, runID,
	)
	rec, err := scanRun(row)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return rec, nil
}

// ListRuns returns the most recent diagnostic runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, directive, kind, subject, results_json, created_at
		 FROM diagnostic_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var subject, results sql.NullString
	var createdStr string
	if err := row.Scan(&rec.RunID, &rec.Directive, &rec.Kind, &subject, &results, &createdStr); err != nil {
		return RunRecord{}, err
	}
	if subject.Valid {
		rec.Subject = subject.String
	}
	if results.Valid {
		rec.Results = json.RawMessage(results.String)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion run-log
