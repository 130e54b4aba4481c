package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/chris/property-escrow/pkg/api"
	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/storage"
	"github.com/chris/property-escrow/pkg/transactions"
	"github.com/go-playground/validator/v10"
)

// AdminTokenHeader carries the operator token on admin-only endpoints.
const AdminTokenHeader = "X-Admin-Token"

// TransactionService is the part of the transaction service exposed over HTTP.
type TransactionService interface {
	RequestCode(ctx context.Context, propertyID, buyerID string) (*models.Transaction, error)
	VerifyCode(ctx context.Context, txID, code string) (*models.Transaction, error)
	Get(ctx context.Context, txID string) (*models.Transaction, error)
	GetLatestForUser(ctx context.Context, propertyID, userID string) (*models.Transaction, error)
	InitiatePayment(ctx context.Context, txID, currency string, method models.PaymentMethod) (*models.Transaction, error)
	LinkPayment(ctx context.Context, txID, reference string) (*models.Transaction, error)
	Confirm(ctx context.Context, txID string, role models.Role) (*models.Transaction, error)
	Cancel(ctx context.Context, txID string) (*models.Transaction, error)
	RaiseDispute(ctx context.Context, txID, reason string) (*models.Transaction, error)
	OverrideConfirmation(ctx context.Context, txID string) (*models.Transaction, error)
	OnDisbursed(ctx context.Context, txID, payoutReference string) (*models.Transaction, error)
	GetEscrowStatus(ctx context.Context, escrowID string) (providers.EscrowStatus, error)
}

// ApiHandler implements the generated server interface.
// It holds our application's dependencies, including the transaction service.
type ApiHandler struct {
	Service    TransactionService
	AdminToken string
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewApiHandler creates a new ApiHandler. An empty adminToken disables the admin endpoints.
func NewApiHandler(service TransactionService, adminToken string, logger *slog.Logger) *ApiHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApiHandler{
		Service:    service,
		AdminToken: adminToken,
		validate:   NewValidator(),
		logger:     logger,
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

var verificationCode = regexp.MustCompile(`^[0-9]{6}$`)

// NewValidator returns a validator that knows the request body tags used in pkg/api.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("verificationcode", func(fl validator.FieldLevel) bool {
		return verificationCode.MatchString(fl.Field().String())
	})
	return v
}

// decode reads a JSON body into dst and validates it. It writes the error response itself.
func (h *ApiHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			writeError(w, http.StatusBadRequest, "invalid_body", fmt.Sprintf("Invalid field %s: failed %s", fe.Field(), fe.Tag()))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return false
	}
	return true
}

// admin checks the operator token. It writes the error response itself.
func (h *ApiHandler) admin(w http.ResponseWriter, r *http.Request) bool {
	if h.AdminToken == "" {
		writeError(w, http.StatusForbidden, "forbidden", "Admin endpoints are disabled")
		return false
	}
	got := r.Header.Get(AdminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.AdminToken)) != 1 {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid admin token")
		return false
	}
	return true
}

// fail maps a service error to its HTTP response.
func (h *ApiHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Property not found")
	case errors.Is(err, storage.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", "User not found")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Transaction not found")
	case errors.Is(err, transactions.ErrInvalidCode),
		errors.Is(err, transactions.ErrCodeExpired),
		errors.Is(err, transactions.ErrCodeAlreadyUsed),
		errors.Is(err, transactions.ErrTooManyAttempts),
		errors.Is(err, transactions.ErrBuyerIsSeller),
		errors.Is(err, transactions.ErrInvalidRole),
		errors.Is(err, transactions.ErrCurrencyMismatch):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", rootMessage(err))
	case errors.Is(err, transactions.ErrFrozen):
		writeError(w, http.StatusConflict, "frozen", "Transaction is on hold pending review")
	case errors.Is(err, transactions.ErrInvalidState):
		writeError(w, http.StatusConflict, "invalid_state", "Transaction state changed, please try again")
	case errors.Is(err, transactions.ErrEscrowMismatch):
		writeError(w, http.StatusConflict, "escrow_mismatch", "Escrow does not match this transaction")
	case errors.Is(err, transactions.ErrReferenceMismatch):
		writeError(w, http.StatusConflict, "reference_mismatch", "Payment reference does not match this transaction")
	case errors.Is(err, providers.ErrPaymentInProgress):
		writeError(w, http.StatusConflict, "payment_in_progress", "A payment for this transaction is still open")
	case errors.Is(err, providers.ErrGatewayUnavailable):
		writeError(w, http.StatusServiceUnavailable, "gateway_unavailable", "Payment is processing, please check back shortly")
	case errors.Is(err, providers.ErrGatewayRejected):
		writeError(w, http.StatusPaymentRequired, "gateway_rejected", "Payment was rejected by the provider")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "operation", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", fmt.Sprintf("Failed to %s", op))
	}
}

// ParamError is the ErrorHandlerFunc for the generated router's parameter binding failures.
func ParamError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
}

// rootMessage returns the message of the outermost sentinel in a user-correctable error chain.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		transactions.ErrInvalidCode,
		transactions.ErrCodeExpired,
		transactions.ErrCodeAlreadyUsed,
		transactions.ErrTooManyAttempts,
		transactions.ErrBuyerIsSeller,
		transactions.ErrInvalidRole,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, api.Error{Code: code, Message: message})
}
