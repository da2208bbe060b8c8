// Package database persists analysis results. Reports and risk signals are
// stored as opaque JSON payloads keyed by analysis id; the core pipeline does
// not depend on this schema.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ufdrinsight/ufdrinsight/internal/errors"
	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

// Analysis is one stored analysis run.
type Analysis struct {
	ID           string               `json:"id"`
	FileName     string               `json:"file_name"`
	Description  string               `json:"description,omitempty"`
	AnalyzedAt   time.Time            `json:"analyzed_at"`
	MessageCount int                  `json:"message_count"`
	CallCount    int                  `json:"call_count"`
	Metrics      *model.MetricsReport `json:"metrics,omitempty"`
	Risks        []model.RiskSignal   `json:"risks,omitempty"`
	Errors       []string             `json:"errors,omitempty"`
}

// Summary is the list-view projection of an analysis.
type Summary struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	Description  string    `json:"description,omitempty"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
	MessageCount int       `json:"message_count"`
	CallCount    int       `json:"call_count"`
}

// Service wraps sqlite access for stored analyses.
type Service struct {
	db *sql.DB
}

// New opens (creating if needed) the analyses database and runs the
// idempotent migration. Nothing here runs at package load; callers invoke it
// exactly once at process start.
func New(path string) (*Service, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Service{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Service) Close() error { return s.db.Close() }

func (s *Service) migrate() error {
	const stmt = `CREATE TABLE IF NOT EXISTS analyses (
		id            TEXT PRIMARY KEY,
		file_name     TEXT NOT NULL,
		description   TEXT,
		analyzed_at   TEXT NOT NULL,
		message_count INTEGER NOT NULL,
		call_count    INTEGER NOT NULL,
		metrics_json  TEXT,
		risks_json    TEXT,
		errors_json   TEXT
	);`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SaveAnalysis stores one analysis run verbatim.
func (s *Service) SaveAnalysis(a *Analysis) error {
	metricsJSON, err := json.Marshal(a.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	risksJSON, err := json.Marshal(a.Risks)
	if err != nil {
		return fmt.Errorf("marshal risks: %w", err)
	}
	errorsJSON, err := json.Marshal(a.Errors)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO analyses
		(id, file_name, description, analyzed_at, message_count, call_count, metrics_json, risks_json, errors_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FileName, a.Description, a.AnalyzedAt.Format(time.RFC3339),
		a.MessageCount, a.CallCount, string(metricsJSON), string(risksJSON), string(errorsJSON))
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns stored analyses, newest first.
func (s *Service) ListAnalyses() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT id, file_name, description, analyzed_at, message_count, call_count
		FROM analyses ORDER BY analyzed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var (
			sum        Summary
			analyzedAt string
		)
		if err := rows.Scan(&sum.ID, &sum.FileName, &sum.Description, &analyzedAt,
			&sum.MessageCount, &sum.CallCount); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		sum.AnalyzedAt, _ = time.Parse(time.RFC3339, analyzedAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetAnalysis loads one stored analysis with its full payloads.
func (s *Service) GetAnalysis(id string) (*Analysis, error) {
	row := s.db.QueryRow(`SELECT id, file_name, description, analyzed_at, message_count, call_count,
		metrics_json, risks_json, errors_json FROM analyses WHERE id = ?`, id)

	var a Analysis
	var analyzedAt string
	var metricsJSON, risksJSON, errorsJSON sql.NullString
	err := row.Scan(&a.ID, &a.FileName, &a.Description, &analyzedAt, &a.MessageCount, &a.CallCount,
		&metricsJSON, &risksJSON, &errorsJSON)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("analysis")
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	a.AnalyzedAt, _ = time.Parse(time.RFC3339, analyzedAt)
	if metricsJSON.Valid && metricsJSON.String != "" {
		if err := json.Unmarshal([]byte(metricsJSON.String), &a.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics: %w", err)
		}
	}
	if risksJSON.Valid && risksJSON.String != "" {
		if err := json.Unmarshal([]byte(risksJSON.String), &a.Risks); err != nil {
			return nil, fmt.Errorf("decode risks: %w", err)
		}
	}
	if errorsJSON.Valid && errorsJSON.String != "" {
		if err := json.Unmarshal([]byte(errorsJSON.String), &a.Errors); err != nil {
			return nil, fmt.Errorf("decode errors: %w", err)
		}
	}
	return &a, nil
}

// DeleteAnalysis removes one stored analysis.
func (s *Service) DeleteAnalysis(id string) error {
	res, err := s.db.Exec(`DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("analysis")
	}
	return nil
}
