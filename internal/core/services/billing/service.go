package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guildwatch/internal/adapters/metrics"
	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/ports"

	"github.com/google/uuid"
)

var (
	ErrUnknownPlan   = domain.Conflict("unknown plan")
	ErrInvalidAmount = errors.New("amount must match the plan price")
	// ErrVerificationReviewed is a conflict sentinel so the store gives up on
	// a review transaction instead of retrying a decided verification.
	ErrVerificationReviewed = domain.Conflict("verification already reviewed")
	ErrReasonRequired       = errors.New("rejection reason required")
)

// Store is the slice of the persistence surface billing needs, plus the
// transaction runner for the review transitions.
type Store interface {
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error
	GetSubscriptionByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	CreateVerification(ctx context.Context, v *domain.PaymentVerification) error
	GetVerification(ctx context.Context, id uuid.UUID) (*domain.PaymentVerification, error)
	ListPendingVerifications(ctx context.Context) ([]domain.PaymentVerification, error)
	SumPayments(ctx context.Context, from, to time.Time) (float64, error)
	CountSubscriptionsByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int, error)
	RunInTx(ctx context.Context, fn func(ctx context.Context, r ports.Repository) error) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// SubmitPayment records a transfer proof as a PENDING verification. The
// user's subscription is created in PENDING_PAYMENT if they have none yet.
func (s *Service) SubmitPayment(ctx context.Context, userID uuid.UUID, planID string, amount float64, transferDetails string) (*domain.PaymentVerification, error) {
	plan, ok := PlanByID(planID)
	if !ok {
		return nil, ErrUnknownPlan
	}
	if amount != plan.Price {
		return nil, ErrInvalidAmount
	}

	verification := &domain.PaymentVerification{
		ID:              uuid.New(),
		UserID:          userID,
		PlanID:          plan.ID,
		Amount:          amount,
		TransferDetails: transferDetails,
		Status:          domain.VerificationPending,
		CreatedAt:       time.Now().UTC(),
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context, r ports.Repository) error {
		_, err := r.GetSubscriptionByUser(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			sub := &domain.Subscription{
				ID:     uuid.New(),
				UserID: userID,
				PlanID: plan.ID,
				Status: domain.SubscriptionPendingPayment,
			}
			if err := r.CreateSubscription(ctx, sub); err != nil {
				return fmt.Errorf("create subscription: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}

		return r.CreateVerification(ctx, verification)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payment submitted", "user", userID, "plan", plan.ID, "amount", amount)
	return verification, nil
}

// ApprovePayment transitions a PENDING verification to APPROVED, records a
// completed Payment and activates the subscription, extending its period by
// the plan duration. The whole transition is one transaction.
func (s *Service) ApprovePayment(ctx context.Context, verificationID, adminID uuid.UUID) error {
	now := time.Now().UTC()

	err := s.store.RunInTx(ctx, func(ctx context.Context, r ports.Repository) error {
		verification, err := r.GetVerification(ctx, verificationID)
		if err != nil {
			return fmt.Errorf("get verification: %w", err)
		}
		if verification.Status != domain.VerificationPending {
			return ErrVerificationReviewed
		}

		plan, ok := PlanByID(verification.PlanID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlan, verification.PlanID)
		}

		verification.Status = domain.VerificationApproved
		verification.ReviewedBy = &adminID
		verification.ReviewedAt = &now
		if err := r.UpdateVerification(ctx, verification); err != nil {
			return fmt.Errorf("update verification: %w", err)
		}

		sub, err := r.GetSubscriptionByUser(ctx, verification.UserID)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}

		// extend from the running period when it has time left, otherwise
		// from now
		base := now
		if sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.After(now) {
			base = *sub.CurrentPeriodEnd
		}
		end := base.AddDate(0, 0, plan.DurationDays)

		sub.Status = domain.SubscriptionActive
		sub.PlanID = plan.ID
		sub.CurrentPeriodEnd = &end
		sub.UpdatedAt = now
		if err := r.UpdateSubscription(ctx, sub); err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}

		payment := &domain.Payment{
			ID:             uuid.New(),
			SubscriptionID: sub.ID,
			VerificationID: verification.ID,
			Amount:         verification.Amount,
			Status:         domain.PaymentCompleted,
			PaidAt:         now,
		}
		return r.CreatePayment(ctx, payment)
	})
	if err != nil {
		return err
	}

	metrics.PaymentReviews.WithLabelValues("approved").Inc()
	slog.Info("Payment approved", "verification", verificationID, "admin", adminID)
	return nil
}

// RejectPayment transitions a PENDING verification to REJECTED with a reason.
// No Payment is recorded and the subscription is left untouched.
func (s *Service) RejectPayment(ctx context.Context, verificationID, adminID uuid.UUID, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	now := time.Now().UTC()

	err := s.store.RunInTx(ctx, func(ctx context.Context, r ports.Repository) error {
		verification, err := r.GetVerification(ctx, verificationID)
		if err != nil {
			return fmt.Errorf("get verification: %w", err)
		}
		if verification.Status != domain.VerificationPending {
			return ErrVerificationReviewed
		}

		verification.Status = domain.VerificationRejected
		verification.RejectionReason = &reason
		verification.ReviewedBy = &adminID
		verification.ReviewedAt = &now
		return r.UpdateVerification(ctx, verification)
	})
	if err != nil {
		return err
	}

	metrics.PaymentReviews.WithLabelValues("rejected").Inc()
	slog.Info("Payment rejected", "verification", verificationID, "admin", adminID, "reason", reason)
	return nil
}

// PendingVerifications lists verifications awaiting review.
func (s *Service) PendingVerifications(ctx context.Context) ([]domain.PaymentVerification, error) {
	return s.store.ListPendingVerifications(ctx)
}
