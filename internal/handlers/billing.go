package handlers

import (
	"errors"
	"net/http"

	"guildwatch/internal/core/domain"
	billingsvc "guildwatch/internal/core/services/billing"

	"github.com/google/uuid"
)

func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, billingsvc.ListPlans())
}

type submitPaymentRequest struct {
	Plan            string  `json:"plan"`
	Amount          float64 `json:"amount"`
	TransferDetails string  `json:"transferDetails"`
}

func (h *Handlers) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req submitPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fields := make(map[string]string)
	if req.Plan == "" {
		fields["plan"] = "required"
	}
	if req.Amount <= 0 {
		fields["amount"] = "must be positive"
	}
	if req.TransferDetails == "" {
		fields["transferDetails"] = "required"
	}
	if len(fields) > 0 {
		writeFieldErrors(w, "validation failed", fields)
		return
	}

	verification, err := h.billing.SubmitPayment(r.Context(), userID, req.Plan, req.Amount, req.TransferDetails)
	if err != nil {
		switch {
		case errors.Is(err, billingsvc.ErrUnknownPlan):
			writeFieldErrors(w, "validation failed", map[string]string{"plan": "unknown plan"})
		case errors.Is(err, billingsvc.ErrInvalidAmount):
			writeFieldErrors(w, "validation failed", map[string]string{"amount": "must match the plan price"})
		default:
			writeError(w, http.StatusInternalServerError, "failed to submit payment")
		}
		return
	}
	writeJSON(w, http.StatusCreated, verification)
}

type reviewPaymentRequest struct {
	VerificationID string `json:"verificationId"`
	Reason         string `json:"reason,omitempty"`
}

func (h *Handlers) reviewIDs(w http.ResponseWriter, r *http.Request, req *reviewPaymentRequest) (verificationID, adminID uuid.UUID, ok bool) {
	claims := ClaimsFrom(r.Context())
	adminID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return uuid.Nil, uuid.Nil, false
	}

	if !decodeBody(w, r, req) {
		return uuid.Nil, uuid.Nil, false
	}
	verificationID, err = uuid.Parse(req.VerificationID)
	if err != nil {
		writeFieldErrors(w, "validation failed", map[string]string{"verificationId": "must be a UUID"})
		return uuid.Nil, uuid.Nil, false
	}
	return verificationID, adminID, true
}

func (h *Handlers) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	var req reviewPaymentRequest
	verificationID, adminID, ok := h.reviewIDs(w, r, &req)
	if !ok {
		return
	}

	if err := h.billing.ApprovePayment(r.Context(), verificationID, adminID); err != nil {
		writeReviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *Handlers) RejectPayment(w http.ResponseWriter, r *http.Request) {
	var req reviewPaymentRequest
	verificationID, adminID, ok := h.reviewIDs(w, r, &req)
	if !ok {
		return
	}
	if req.Reason == "" {
		writeFieldErrors(w, "validation failed", map[string]string{"reason": "required"})
		return
	}

	if err := h.billing.RejectPayment(r.Context(), verificationID, adminID, req.Reason); err != nil {
		writeReviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func writeReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "verification not found")
	case errors.Is(err, billingsvc.ErrVerificationReviewed):
		writeError(w, http.StatusBadRequest, "verification already reviewed")
	default:
		writeError(w, http.StatusInternalServerError, "review failed")
	}
}

func (h *Handlers) PendingVerifications(w http.ResponseWriter, r *http.Request) {
	pending, err := h.billing.PendingVerifications(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list verifications")
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *Handlers) BusinessMetrics(w http.ResponseWriter, r *http.Request) {
	report, err := h.billing.BusinessMetrics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute metrics")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
