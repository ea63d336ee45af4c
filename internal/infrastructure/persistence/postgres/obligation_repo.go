package postgres

import (
	"context"
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

var _ port.ObligationRepository = (*ObligationRepo)(nil)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pgutil.Querier
	pgutil.TxBeginner
}

// ObligationRepo implements port.ObligationRepository. Terms live in a JSONB
// column; payments are an append-only child table.
type ObligationRepo struct {
	db DB
}

// NewObligationRepo creates a new PostgreSQL-backed obligation repository.
func NewObligationRepo(db DB) *ObligationRepo {
	return &ObligationRepo{db: db}
}

const obligationColumns = `id, customer_id, product_type, status, credit_score_at_origination,
		       terms, originated_at, completed_at, version`

const insertObligationSQL = `
	INSERT INTO obligations (
		id, customer_id, product_type, status, credit_score_at_origination,
		terms, originated_at, completed_at, version, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (id) DO NOTHING
`

const upsertObligationSQL = `
	INSERT INTO obligations (
		id, customer_id, product_type, status, credit_score_at_origination,
		terms, originated_at, completed_at, version, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (id) DO UPDATE SET
		status       = EXCLUDED.status,
		terms        = EXCLUDED.terms,
		completed_at = EXCLUDED.completed_at,
		version      = obligations.version + 1,
		updated_at   = EXCLUDED.updated_at
	WHERE obligations.version = $9
`

// Save upserts the obligation and appends any payments not yet stored. The
// update only applies when the stored version still matches the one the
// aggregate was loaded with; otherwise model.ErrVersionConflict is returned.
// A new obligation is insert-only and conflicts with an existing id.
func (r *ObligationRepo) Save(ctx context.Context, ob model.Obligation) error {
	termsJSON, err := encodeTerms(ob.Terms())
	if err != nil {
		return err
	}

	return pgutil.WithTransaction(ctx, r.db, func(q pgutil.Querier) error {
		query := upsertObligationSQL
		if ob.IsNew() {
			query = insertObligationSQL
		}
		tag, err := q.Exec(ctx, query,
			ob.ID(), ob.CustomerID(), ob.ProductType().String(), ob.Status().String(),
			ob.CreditScoreAtOrigination(), termsJSON, ob.OriginatedAt(), ob.CompletedAt(),
			ob.Version(), time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("save obligation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			if ob.IsNew() {
				return fmt.Errorf("%w: obligation %s already exists", model.ErrVersionConflict, ob.ID())
			}
			return model.ErrVersionConflict
		}

		for _, p := range ob.Payments() {
			paymentQuery := `
				INSERT INTO obligation_payments (id, obligation_id, amount, revenue_for_period, paid_at)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO NOTHING
			`
			if _, err := q.Exec(ctx, paymentQuery, p.ID, ob.ID(), p.Amount, p.RevenueForPeriod, p.PaidAt); err != nil {
				return fmt.Errorf("save payment %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// FindByID returns the obligation with its payments, or
// model.ErrObligationNotFound.
func (r *ObligationRepo) FindByID(ctx context.Context, id string) (model.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE id = $1
	`
	row, err := scanObligationRow(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Obligation{}, model.ErrObligationNotFound
	}
	if err != nil {
		return model.Obligation{}, err
	}

	payments, err := r.loadPayments(ctx, []string{id})
	if err != nil {
		return model.Obligation{}, err
	}
	return row.build(payments[id]), nil
}

// FindByCustomerID returns every obligation of a customer, newest first.
func (r *ObligationRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE customer_id = $1
		ORDER BY originated_at DESC, id
	`
	return r.findMany(ctx, query, customerID)
}

// FindActive returns every ACTIVE obligation across customers.
func (r *ObligationRepo) FindActive(ctx context.Context) ([]model.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE status = $1
		ORDER BY originated_at, id
	`
	return r.findMany(ctx, query, valueobject.ObligationStatusActive.String())
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

type obligationRow struct {
	id, customerID string
	terms          model.Terms
	status         valueobject.ObligationStatus
	score          int
	originatedAt   time.Time
	completedAt    *time.Time
	version        int
}

func (o obligationRow) build(payments []model.Payment) model.Obligation {
	return model.ReconstructObligation(
		o.id, o.customerID, o.terms, o.status, o.score,
		o.originatedAt, o.completedAt, payments, o.version,
	)
}

func (r *ObligationRepo) findMany(ctx context.Context, query string, args ...any) ([]model.Obligation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query obligations: %w", err)
	}
	defer rows.Close()

	var (
		found []obligationRow
		ids   []string
	)
	for rows.Next() {
		row, err := scanObligationRow(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, row)
		ids = append(ids, row.id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate obligations: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}

	payments, err := r.loadPayments(ctx, ids)
	if err != nil {
		return nil, err
	}

	obligations := make([]model.Obligation, 0, len(found))
	for _, row := range found {
		obligations = append(obligations, row.build(payments[row.id]))
	}
	return obligations, nil
}

func scanObligationRow(s scannable) (obligationRow, error) {
	var (
		row                   obligationRow
		productStr, statusStr string
		termsJSON             []byte
	)
	err := s.Scan(
		&row.id, &row.customerID, &productStr, &statusStr, &row.score,
		&termsJSON, &row.originatedAt, &row.completedAt, &row.version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return obligationRow{}, err
		}
		return obligationRow{}, fmt.Errorf("scan obligation: %w", err)
	}

	product, err := valueobject.NewProductType(productStr)
	if err != nil {
		return obligationRow{}, fmt.Errorf("parse product type: %w", err)
	}
	row.status, err = valueobject.NewObligationStatus(statusStr)
	if err != nil {
		return obligationRow{}, fmt.Errorf("parse obligation status: %w", err)
	}
	row.terms, err = decodeTerms(product, termsJSON)
	if err != nil {
		return obligationRow{}, err
	}
	row.originatedAt = row.originatedAt.UTC()
	if row.completedAt != nil {
		utc := row.completedAt.UTC()
		row.completedAt = &utc
	}
	return row, nil
}

func (r *ObligationRepo) loadPayments(ctx context.Context, obligationIDs []string) (map[string][]model.Payment, error) {
	query := `
		SELECT id, obligation_id, amount, revenue_for_period, paid_at
		FROM obligation_payments
		WHERE obligation_id = ANY($1)
		ORDER BY paid_at, id
	`
	rows, err := r.db.Query(ctx, query, obligationIDs)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.Payment, len(obligationIDs))
	for rows.Next() {
		var (
			p       model.Payment
			revenue decimal.NullDecimal
		)
		if err := rows.Scan(&p.ID, &p.ObligationID, &p.Amount, &revenue, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if revenue.Valid {
			v := revenue.Decimal
			p.RevenueForPeriod = &v
		}
		p.PaidAt = p.PaidAt.UTC()
		out[p.ObligationID] = append(out[p.ObligationID], p)
	}
	return out, rows.Err()
}
