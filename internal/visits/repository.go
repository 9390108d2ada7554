package visits

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles visit persistence and aggregation.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a visits repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record upserts the (visitor, day) row, refreshing its timestamp. The unique
// constraint collapses repeat same-day visits into one row, so a conflict is
// a successful no-op rather than an error.
func (r *Repository) Record(ctx context.Context, visitorID, visitDate string) error {
	const q = `INSERT INTO visits (visitor_id, visit_date, visited_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (visitor_id, visit_date) DO UPDATE SET visited_at = NOW()`
	_, err := r.pool.Exec(ctx, q, visitorID, visitDate)
	return err
}

// Summary returns the all-time distinct visitor count and today's count.
// Rows are already unique per (visitor, day), so today's count is a plain
// row count for the date.
func (r *Repository) Summary(ctx context.Context, today string) (total, todayCount int, err error) {
	if err = r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT visitor_id) FROM visits`).Scan(&total); err != nil {
		return 0, 0, err
	}
	if err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM visits WHERE visit_date = $1`, today).Scan(&todayCount); err != nil {
		return 0, 0, err
	}
	return total, todayCount, nil
}

// CountByDate returns the unique visitor count for one calendar day.
func (r *Repository) CountByDate(ctx context.Context, date string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM visits WHERE visit_date = $1`, date).Scan(&count)
	return count, err
}
