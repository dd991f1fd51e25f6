// Package postgres provides PostgreSQL database adapters.
//
// It implements the repository ports for analysis persistence over a
// pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// AnalysisRepo persists and loads analyses using a minimal pgx pool.
type AnalysisRepo struct{ Pool PgxPool }

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewAnalysisRepo constructs an AnalysisRepo with the given pool.
func NewAnalysisRepo(p PgxPool) *AnalysisRepo { return &AnalysisRepo{Pool: p} }

// Create stores a new analysis and returns its id (generates one if empty).
func (r *AnalysisRepo) Create(ctx domain.Context, a domain.Analysis) (string, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "analyses"),
	)
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	result, err := json.Marshal(a.Result)
	if err != nil {
		return "", fmt.Errorf("op=analysis.create marshal result: %w", err)
	}
	var review []byte
	if a.Review != nil {
		review, err = json.Marshal(a.Review)
		if err != nil {
			return "", fmt.Errorf("op=analysis.create marshal review: %w", err)
		}
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO analyses (id, user_id, filename, result, review, combined_score, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err = r.Pool.Exec(ctx, q, id, a.UserID, a.Filename, result, review, a.CombinedScore, createdAt)
	if err != nil {
		return "", fmt.Errorf("op=analysis.create: %w", err)
	}
	return id, nil
}

// GetByID loads an analysis by id, scoped to the owning user.
func (r *AnalysisRepo) GetByID(ctx domain.Context, id, userID string) (domain.Analysis, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.GetByID")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "analyses"),
	)
	q := `SELECT id, user_id, filename, result, review, combined_score, created_at FROM analyses WHERE id=$1 AND user_id=$2`
	row := r.Pool.QueryRow(ctx, q, id, userID)

	var (
		a      domain.Analysis
		result []byte
		review []byte
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Filename, &result, &review, &a.CombinedScore, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Analysis{}, fmt.Errorf("op=analysis.get: %w", domain.ErrNotFound)
		}
		return domain.Analysis{}, fmt.Errorf("op=analysis.get: %w", err)
	}
	if err := json.Unmarshal(result, &a.Result); err != nil {
		return domain.Analysis{}, fmt.Errorf("op=analysis.get unmarshal result: %w", err)
	}
	if len(review) > 0 {
		a.Review = &domain.AIReview{}
		if err := json.Unmarshal(review, a.Review); err != nil {
			return domain.Analysis{}, fmt.Errorf("op=analysis.get unmarshal review: %w", err)
		}
	}
	return a, nil
}

// ListByUser returns the user's analyses as summary rows, newest first.
func (r *AnalysisRepo) ListByUser(ctx domain.Context, userID string) ([]domain.AnalysisSummary, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.ListByUser")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "analyses"),
	)
	q := `SELECT id, filename, combined_score, created_at FROM analyses WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("op=analysis.list: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AnalysisSummary, 0)
	for rows.Next() {
		var s domain.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Filename, &s.CombinedScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=analysis.list scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=analysis.list rows: %w", err)
	}
	return out, nil
}
