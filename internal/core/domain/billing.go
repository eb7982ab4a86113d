package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type SubscriptionStatus string

const (
	SubscriptionPendingPayment SubscriptionStatus = "PENDING_PAYMENT"
	SubscriptionActive         SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled      SubscriptionStatus = "CANCELLED"
	SubscriptionExpired        SubscriptionStatus = "EXPIRED"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

const PaymentCompleted = "completed"

// Subscription is a user's billing state. Exactly one per user.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:s"`

	ID               uuid.UUID          `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID          `bun:"user_id,notnull,unique,type:uuid" json:"user_id"`
	PlanID           string             `bun:"plan_id,notnull" json:"plan_id"`
	Status           SubscriptionStatus `bun:"status,notnull,default:'PENDING_PAYMENT'" json:"status"`
	CurrentPeriodEnd *time.Time         `bun:"current_period_end,nullzero" json:"current_period_end,omitempty"`
	CreatedAt        time.Time          `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time          `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// PaymentVerification is a submitted transfer proof awaiting admin review.
type PaymentVerification struct {
	bun.BaseModel `bun:"table:payment_verifications,alias:pv"`

	ID              uuid.UUID          `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID          `bun:"user_id,notnull,type:uuid" json:"user_id"`
	PlanID          string             `bun:"plan_id,notnull" json:"plan_id"`
	Amount          float64            `bun:"amount,notnull" json:"amount"`
	TransferDetails string             `bun:"transfer_details,notnull,default:''" json:"transfer_details"`
	Status          VerificationStatus `bun:"status,notnull,default:'PENDING'" json:"status"`
	RejectionReason *string            `bun:"rejection_reason,nullzero" json:"rejection_reason,omitempty"`
	ReviewedBy      *uuid.UUID         `bun:"reviewed_by,nullzero,type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `bun:"reviewed_at,nullzero" json:"reviewed_at,omitempty"`
	CreatedAt       time.Time          `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Payment is a completed payment, created only when a verification is approved.
type Payment struct {
	bun.BaseModel `bun:"table:payments,alias:pay"`

	ID             uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	SubscriptionID uuid.UUID `bun:"subscription_id,notnull,type:uuid" json:"subscription_id"`
	VerificationID uuid.UUID `bun:"verification_id,notnull,type:uuid" json:"verification_id"`
	Amount         float64   `bun:"amount,notnull" json:"amount"`
	Status         string    `bun:"status,notnull,default:'completed'" json:"status"`
	PaidAt         time.Time `bun:"paid_at,notnull" json:"paid_at"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
