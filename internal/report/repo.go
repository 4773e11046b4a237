// Package report rolls up committed orders. Revenue only counts orders
// that progressed past initial placement, so PENDING and CANCELLED are
// excluded.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mercadia/storefront/internal/order"
	"github.com/mercadia/storefront/internal/storage"
)

type SalesSummary struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalOrders  int64  `json:"total_orders"`
	TotalRevenue string `json:"total_revenue"`
}

type Repository interface {
	SalesSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error)
}

type PGRepo struct{ store *storage.Store }

func NewPGRepo(store *storage.Store) *PGRepo { return &PGRepo{store: store} }

var recognizedStatuses = []string{order.StatusProcessing, order.StatusShipped, order.StatusDelivered}

// SalesSummary counts orders and sums revenue over the inclusive date
// range: the full start day through the full end day. Empty ranges
// yield zeros, not an error.
func (r *PGRepo) SalesSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	from, to := dayBounds(start, end)

	var (
		count   int64
		revenue string
	)
	err := r.store.Pool.QueryRow(ctx, `
		SELECT COUNT(id), COALESCE(SUM(total_amount), 0)::text
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status = ANY($3)
	`, from, to, recognizedStatuses).Scan(&count, &revenue)
	if err != nil {
		return nil, err
	}

	total, err := decimal.NewFromString(revenue)
	if err != nil {
		return nil, err
	}
	return &SalesSummary{
		StartDate:    start.Format("2006-01-02"),
		EndDate:      end.Format("2006-01-02"),
		TotalOrders:  count,
		TotalRevenue: total.RoundBank(2).StringFixed(2),
	}, nil
}

// dayBounds widens (start, end) to [start 00:00:00, day after end), the
// half-open equivalent of "through 23:59:59.999...".
func dayBounds(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return from, to
}
