package handlers

import (
	"net/http"

	"github.com/chris/property-escrow/pkg/api"
	"github.com/chris/property-escrow/pkg/mapping"
	"github.com/chris/property-escrow/pkg/models"
)

// RequestCode opens or reuses the transaction for a property and buyer and sends a code.
func (h *ApiHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var body api.RequestCodeJSONRequestBody
	if !h.decode(w, r, &body) {
		return
	}

	tx, err := h.Service.RequestCode(r.Context(), body.PropertyId, body.BuyerId)
	if err != nil {
		h.fail(w, r, "request verification code", err)
		return
	}
	writeJSON(w, http.StatusCreated, mapping.ToApiTransaction(tx))
}

// VerifyCode checks the buyer's verification code.
func (h *ApiHandler) VerifyCode(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.VerifyCodeJSONRequestBody
	if !h.decode(w, r, &body) {
		return
	}

	tx, err := h.Service.VerifyCode(r.Context(), transactionId, body.Code)
	if err != nil {
		h.fail(w, r, "verify code", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *ApiHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	tx, err := h.Service.Get(r.Context(), transactionId)
	if err != nil {
		h.fail(w, r, "retrieve transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// GetLatestTransaction returns the newest transaction on a property the user takes part in.
func (h *ApiHandler) GetLatestTransaction(w http.ResponseWriter, r *http.Request, params api.GetLatestTransactionParams) {
	tx, err := h.Service.GetLatestForUser(r.Context(), params.PropertyId, params.UserId)
	if err != nil {
		h.fail(w, r, "retrieve transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// InitiatePayment opens an escrow checkout or a card payment.
func (h *ApiHandler) InitiatePayment(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.InitiatePaymentJSONRequestBody
	if r.ContentLength != 0 && !h.decode(w, r, &body) {
		return
	}

	currency := ""
	if body.Currency != nil {
		currency = *body.Currency
	}
	tx, err := h.Service.InitiatePayment(r.Context(), transactionId, currency, mapping.ToDomainPaymentMethod(body.Method))
	if err != nil {
		h.fail(w, r, "initiate payment", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// LinkPayment verifies a card payment reference against the transaction.
func (h *ApiHandler) LinkPayment(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.LinkPaymentJSONRequestBody
	if !h.decode(w, r, &body) {
		return
	}

	tx, err := h.Service.LinkPayment(r.Context(), transactionId, body.PaymentReference)
	if err != nil {
		h.fail(w, r, "link payment", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// ConfirmTransaction records the buyer's or seller's confirmation.
func (h *ApiHandler) ConfirmTransaction(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.ConfirmTransactionJSONRequestBody
	if !h.decode(w, r, &body) {
		return
	}

	tx, err := h.Service.Confirm(r.Context(), transactionId, models.Role(body.Role))
	if err != nil {
		h.fail(w, r, "confirm transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// CancelTransaction cancels a transaction before funds are held.
func (h *ApiHandler) CancelTransaction(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	tx, err := h.Service.Cancel(r.Context(), transactionId)
	if err != nil {
		h.fail(w, r, "cancel transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// RaiseDispute freezes a funded transaction.
func (h *ApiHandler) RaiseDispute(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.RaiseDisputeJSONRequestBody
	if !h.decode(w, r, &body) {
		return
	}

	tx, err := h.Service.RaiseDispute(r.Context(), transactionId, body.Reason)
	if err != nil {
		h.fail(w, r, "raise dispute", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// GetEscrowStatus returns the provider's view of an escrow.
func (h *ApiHandler) GetEscrowStatus(w http.ResponseWriter, r *http.Request, escrowId string) {
	status, err := h.Service.GetEscrowStatus(r.Context(), escrowId)
	if err != nil {
		h.fail(w, r, "retrieve escrow status", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiEscrowStatus(escrowId, status))
}
