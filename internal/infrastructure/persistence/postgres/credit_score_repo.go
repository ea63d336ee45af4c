package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
	pgutil "github.com/aurasystemsai/aura-core-monolith-sub005/pkg/postgres"
)

var _ port.CreditScoreRepository = (*CreditScoreRepo)(nil)

// CreditScoreRepo implements port.CreditScoreRepository. Records are
// insert-only; a recalculation adds a row.
type CreditScoreRepo struct {
	db pgutil.Querier
}

// NewCreditScoreRepo creates a new PostgreSQL-backed score repository.
func NewCreditScoreRepo(db pgutil.Querier) *CreditScoreRepo {
	return &CreditScoreRepo{db: db}
}

type factorRow struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Grade       string          `json:"grade"`
	Weight      decimal.Decimal `json:"weight"`
	Score       int             `json:"score"`
}

const scoreColumns = `id, customer_id, score, rating, risk_tier, max_credit_limit, factors, calculated_at`

// Save stores a score record. Saving the same record twice is a no-op.
func (r *CreditScoreRepo) Save(ctx context.Context, rec model.CreditScoreRecord) error {
	factors := make([]factorRow, 0, len(rec.Factors()))
	for _, f := range rec.Factors() {
		factors = append(factors, factorRow{
			Name:        f.Name,
			Description: f.Description,
			Grade:       f.Grade.String(),
			Weight:      f.Weight,
			Score:       f.Score,
		})
	}
	factorsJSON, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("marshal score factors: %w", err)
	}

	query := `
		INSERT INTO credit_scores (` + scoreColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.Exec(ctx, query,
		rec.ID(), rec.CustomerID(), rec.Score(), rec.Rating().String(),
		rec.RiskTier().Name(), rec.MaxCreditLimit(), factorsJSON, rec.CalculatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save credit score: %w", err)
	}
	return nil
}

// FindLatest returns the newest record, or model.ErrMissingCreditScore.
func (r *CreditScoreRepo) FindLatest(ctx context.Context, customerID string) (model.CreditScoreRecord, error) {
	query := `
		SELECT ` + scoreColumns + `
		FROM credit_scores
		WHERE customer_id = $1
		ORDER BY calculated_at DESC, id DESC
		LIMIT 1
	`
	rec, err := scanScoreRow(r.db.QueryRow(ctx, query, customerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CreditScoreRecord{}, model.ErrMissingCreditScore
	}
	return rec, err
}

// FindHistory returns records newest first. A non-positive limit returns
// all of them.
func (r *CreditScoreRepo) FindHistory(ctx context.Context, customerID string, limit int) ([]model.CreditScoreRecord, error) {
	query := `
		SELECT ` + scoreColumns + `
		FROM credit_scores
		WHERE customer_id = $1
		ORDER BY calculated_at DESC, id DESC
	`
	args := []any{customerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query credit scores: %w", err)
	}
	defer rows.Close()

	var records []model.CreditScoreRecord
	for rows.Next() {
		rec, err := scanScoreRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanScoreRow(s scannable) (model.CreditScoreRecord, error) {
	var (
		id, customerID, ratingStr, tierStr string
		score                              int
		maxCreditLimit                     decimal.Decimal
		factorsJSON                        []byte
		calculatedAt                       time.Time
	)
	err := s.Scan(&id, &customerID, &score, &ratingStr, &tierStr, &maxCreditLimit, &factorsJSON, &calculatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CreditScoreRecord{}, err
		}
		return model.CreditScoreRecord{}, fmt.Errorf("scan credit score: %w", err)
	}

	rating, err := valueobject.NewRating(ratingStr)
	if err != nil {
		return model.CreditScoreRecord{}, fmt.Errorf("parse rating: %w", err)
	}
	tier, err := valueobject.NewRiskTier(tierStr)
	if err != nil {
		return model.CreditScoreRecord{}, fmt.Errorf("parse risk tier: %w", err)
	}

	var rows []factorRow
	if err := json.Unmarshal(factorsJSON, &rows); err != nil {
		return model.CreditScoreRecord{}, fmt.Errorf("unmarshal score factors: %w", err)
	}
	factors := make([]model.ScoreFactor, 0, len(rows))
	for _, f := range rows {
		grade, err := valueobject.NewFactorGrade(f.Grade)
		if err != nil {
			return model.CreditScoreRecord{}, fmt.Errorf("parse factor grade: %w", err)
		}
		factors = append(factors, model.ScoreFactor{
			Name:        f.Name,
			Description: f.Description,
			Grade:       grade,
			Weight:      f.Weight,
			Score:       f.Score,
		})
	}

	return model.ReconstructCreditScoreRecord(
		id, customerID, score, rating, tier, factors, maxCreditLimit, calculatedAt.UTC(),
	), nil
}

type scannable interface {
	Scan(dest ...any) error
}
