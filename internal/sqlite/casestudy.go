package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/rpggio/policyatlas/internal/repository"
)

// CaseStudyRepository implements casestudy.Repository for SQLite
type CaseStudyRepository struct {
	db *DB
}

// NewCaseStudyRepository creates a new CaseStudyRepository
func NewCaseStudyRepository(db *DB) *CaseStudyRepository {
	return &CaseStudyRepository{db: db}
}

// ListSummaries returns every case study summary in insertion order.
func (r *CaseStudyRepository) ListSummaries(ctx context.Context) ([]casestudy.Summary, error) {
	query := `
		SELECT id, country, policy_name, policy_type, data_quality, enacted_date, tags
		FROM case_studies
		ORDER BY rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list case studies: %w", err)
	}
	defer rows.Close()

	summaries := []casestudy.Summary{}
	for rows.Next() {
		var s casestudy.Summary
		var tags string
		if err := rows.Scan(
			&s.ID,
			&s.Country,
			&s.PolicyName,
			&s.PolicyType,
			&s.DataQuality,
			&s.EnactedDate,
			&tags,
		); err != nil {
			return nil, fmt.Errorf("failed to scan case study: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for %s: %w", s.ID, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate case studies: %w", err)
	}

	return summaries, nil
}

// Get retrieves a full case study by ID
func (r *CaseStudyRepository) Get(ctx context.Context, id string) (*casestudy.Detail, error) {
	query := `SELECT detail FROM case_studies WHERE id = ?`

	var raw string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case study: %w", err)
	}

	var detail casestudy.Detail
	if err := json.Unmarshal([]byte(raw), &detail); err != nil {
		return nil, fmt.Errorf("failed to decode case study %s: %w", id, err)
	}

	return &detail, nil
}

// Upsert inserts a case study or replaces the stored one with the same ID.
// Summary columns are kept in step with the detail document.
func (r *CaseStudyRepository) Upsert(ctx context.Context, detail *casestudy.Detail) error {
	tags := detail.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode case study: %w", err)
	}

	query := `
		INSERT INTO case_studies (id, country, policy_name, policy_type, data_quality, enacted_date, tags, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			country = excluded.country,
			policy_name = excluded.policy_name,
			policy_type = excluded.policy_type,
			data_quality = excluded.data_quality,
			enacted_date = excluded.enacted_date,
			tags = excluded.tags,
			detail = excluded.detail,
			modified_at = CURRENT_TIMESTAMP
	`

	_, err = r.db.ExecContext(ctx, query,
		detail.ID,
		detail.Country,
		detail.PolicyName,
		detail.PolicyType,
		detail.DataQuality,
		detail.EnactedDate,
		string(tagsJSON),
		string(detailJSON),
	)
	if isCheckViolation(err) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert case study: %w", err)
	}

	return nil
}

// Count returns the number of stored case studies
func (r *CaseStudyRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM case_studies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count case studies: %w", err)
	}
	return n, nil
}
