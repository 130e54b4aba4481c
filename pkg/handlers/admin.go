package handlers

import (
	"net/http"

	"github.com/chris/property-escrow/pkg/api"
	"github.com/chris/property-escrow/pkg/mapping"
)

// OverrideConfirmation moves a transaction to awaiting_disbursement without both confirmations.
func (h *ApiHandler) OverrideConfirmation(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	if !h.admin(w, r) {
		return
	}

	tx, err := h.Service.OverrideConfirmation(r.Context(), transactionId)
	if err != nil {
		h.fail(w, r, "override confirmation", err)
		return
	}
	h.logger.InfoContext(r.Context(), "confirmation overridden by operator", "transaction_id", transactionId)
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// MarkDisbursed records a payout made outside the escrow provider.
func (h *ApiHandler) MarkDisbursed(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	if !h.admin(w, r) {
		return
	}
	var body api.MarkDisbursedJSONRequestBody
	if !h.decode(w, r, &body) {
		return
	}

	tx, err := h.Service.OnDisbursed(r.Context(), transactionId, body.PayoutReference)
	if err != nil {
		h.fail(w, r, "mark disbursed", err)
		return
	}
	h.logger.InfoContext(r.Context(), "disbursement recorded by operator", "transaction_id", transactionId, "payout_reference", body.PayoutReference)
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}
