package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/collection"
)

// ReportService builds the dashboard figures.
type ReportService struct {
	users, menu, payments Counter
	sales                 SalesSource
}

func NewReportService(users, menu, payments Counter, sales SalesSource) *ReportService {
	return &ReportService{users: users, menu: menu, payments: payments, sales: sales}
}

// AdminStats returns revenue plus approximate customer, product and order
// counts. The counts come from collection metadata and may lag recent writes.
func (s *ReportService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var (
		stats  models.AdminStats
		prices []decimal.Decimal
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.Customers, err = s.users.EstimatedCount(ctx); return })
	g.Go(func() (err error) { stats.Products, err = s.menu.EstimatedCount(ctx); return })
	g.Go(func() (err error) { stats.Orders, err = s.payments.EstimatedCount(ctx); return })
	g.Go(func() (err error) { prices, err = s.sales.Prices(ctx); return })
	if err := g.Wait(); err != nil {
		return models.AdminStats{}, err
	}

	stats.Revenue = Revenue(prices).InexactFloat64()
	return stats, nil
}

// Revenue folds prices into an exact sum. No prices sum to zero.
func Revenue(prices []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	return sum
}

// CategoryBreakdown returns item count and sales total per menu category,
// ordered by category name.
func (s *ReportService) CategoryBreakdown(ctx context.Context) ([]models.CategoryTotal, error) {
	sums, err := s.sales.CategorySums(ctx)
	if err != nil {
		return nil, err
	}
	return RoundTotals(sums), nil
}

// RoundTotals rounds each total to cents, half away from zero, after
// summation. Rows are sorted by category.
func RoundTotals(sums []models.CategorySum) []models.CategoryTotal {
	rows := collection.Map(sums, func(row models.CategorySum) models.CategoryTotal {
		return models.CategoryTotal{
			Category: row.Category,
			Count:    row.Count,
			Total:    row.Total.Round(2).InexactFloat64(),
		}
	})
	return collection.SortBy(rows, func(a, b models.CategoryTotal) bool { return a.Category < b.Category })
}
