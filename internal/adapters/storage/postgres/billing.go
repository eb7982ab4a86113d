package postgres

import (
	"context"
	"fmt"
	"time"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

func (s *Store) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	if _, err := s.db.NewInsert().Model(sub).Exec(ctx); err != nil {
		return fmt.Errorf("create subscription: %w", convertError(err))
	}
	return nil
}

func (s *Store) UpdateSubscription(ctx context.Context, sub *domain.Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	res, err := s.db.NewUpdate().Model(sub).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetSubscriptionByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	sub := &domain.Subscription{}
	err := s.db.NewSelect().Model(sub).Where("s.user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return sub, nil
}

func (s *Store) CreateVerification(ctx context.Context, v *domain.PaymentVerification) error {
	if _, err := s.db.NewInsert().Model(v).Exec(ctx); err != nil {
		return fmt.Errorf("create verification: %w", convertError(err))
	}
	return nil
}

func (s *Store) UpdateVerification(ctx context.Context, v *domain.PaymentVerification) error {
	res, err := s.db.NewUpdate().Model(v).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update verification: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetVerification(ctx context.Context, id uuid.UUID) (*domain.PaymentVerification, error) {
	v := &domain.PaymentVerification{}
	err := s.db.NewSelect().Model(v).Where("pv.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return v, nil
}

func (s *Store) ListPendingVerifications(ctx context.Context) ([]domain.PaymentVerification, error) {
	var verifications []domain.PaymentVerification
	err := s.db.NewSelect().Model(&verifications).
		Where("pv.status = ?", domain.VerificationPending).
		Order("pv.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending verifications: %w", err)
	}
	return verifications, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	if _, err := s.db.NewInsert().Model(p).Exec(ctx); err != nil {
		return fmt.Errorf("create payment: %w", convertError(err))
	}
	return nil
}

// SumPayments totals completed payments in [from, to).
func (s *Store) SumPayments(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := s.db.NewSelect().
		Model((*domain.Payment)(nil)).
		ColumnExpr("COALESCE(SUM(pay.amount), 0)").
		Where("pay.status = ?", domain.PaymentCompleted).
		Where("pay.paid_at >= ?", from).
		Where("pay.paid_at < ?", to).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}

func (s *Store) CountSubscriptionsByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int, error) {
	var rows []struct {
		Status domain.SubscriptionStatus `bun:"status"`
		Count  int                       `bun:"count"`
	}

	err := s.db.NewSelect().
		Model((*domain.Subscription)(nil)).
		ColumnExpr("s.status AS status").
		ColumnExpr("COUNT(*) AS count").
		Group("s.status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("count subscriptions by status: %w", err)
	}

	result := make(map[domain.SubscriptionStatus]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}
