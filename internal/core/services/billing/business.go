package billing

import (
	"context"
	"fmt"
	"time"

	"guildwatch/internal/core/domain"
)

// BusinessReport aggregates revenue and customer numbers. All values are
// derived from completed payments and subscription states at query time.
type BusinessReport struct {
	RevenueMonth   float64 `json:"revenue_month"`
	RevenueQuarter float64 `json:"revenue_quarter"`
	RevenueYear    float64 `json:"revenue_year"`

	TotalCustomers  int     `json:"total_customers"`
	ActiveCustomers int     `json:"active_customers"`
	ChurnRate       float64 `json:"churn_rate"`
	// GrowthPercent is the revenue delta of the current calendar month
	// against the previous one.
	GrowthPercent float64 `json:"growth_percent"`
}

// BusinessMetrics computes the report over UTC calendar windows.
func (s *Service) BusinessMetrics(ctx context.Context) (*BusinessReport, error) {
	now := time.Now().UTC()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
	quarterStart := time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	report := &BusinessReport{}

	var err error
	if report.RevenueMonth, err = s.store.SumPayments(ctx, monthStart, now); err != nil {
		return nil, fmt.Errorf("sum month revenue: %w", err)
	}
	if report.RevenueQuarter, err = s.store.SumPayments(ctx, quarterStart, now); err != nil {
		return nil, fmt.Errorf("sum quarter revenue: %w", err)
	}
	if report.RevenueYear, err = s.store.SumPayments(ctx, yearStart, now); err != nil {
		return nil, fmt.Errorf("sum year revenue: %w", err)
	}

	prevRevenue, err := s.store.SumPayments(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, fmt.Errorf("sum previous month revenue: %w", err)
	}
	if prevRevenue > 0 {
		report.GrowthPercent = (report.RevenueMonth - prevRevenue) / prevRevenue * 100
	}

	counts, err := s.store.CountSubscriptionsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subscriptions: %w", err)
	}
	for _, n := range counts {
		report.TotalCustomers += n
	}
	report.ActiveCustomers = counts[domain.SubscriptionActive]
	if report.TotalCustomers > 0 {
		report.ChurnRate = float64(report.TotalCustomers-report.ActiveCustomers) / float64(report.TotalCustomers)
	}

	return report, nil
}
