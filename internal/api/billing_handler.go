package api

import (
	"io"
	"net/http"

	"github.com/fahrvergleich/fahrvergleich-api/internal/api/shared"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
)

// maxWebhookBodyBytes caps the webhook payload size.
const maxWebhookBodyBytes = 65536

// stripeSignatureHeader carries the webhook payload signature.
const stripeSignatureHeader = "Stripe-Signature"

// BillingHandler handles the premium upgrade endpoints: the authenticated
// checkout session creation and the unauthenticated payment webhook.
type BillingHandler struct {
	billingService service.BillingService
}

// NewBillingHandler creates a new BillingHandler with the given dependencies.
func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// CreateCheckoutSession handles POST /billing/checkout-session.
func (h *BillingHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	url, err := h.billingService.StartPremiumCheckout(r.Context(), adminID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, CheckoutSessionResponse{CheckoutURL: url})
}

// Webhook handles POST /billing/webhook. The payload signature replaces JWT
// authentication on this route; an invalid signature is rejected with 400 so
// the payment provider retries only genuinely failed deliveries.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Failed to read payload")
		return
	}

	signature := r.Header.Get(stripeSignatureHeader)
	if signature == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Missing signature header")
		return
	}

	if err := h.billingService.HandleWebhook(r.Context(), payload, signature); err != nil {
		// A failing signature usually means a webhook secret mismatch.
		RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Webhook rejected", err,
			shared.WithElevatedLogLevel())
		return
	}

	w.WriteHeader(http.StatusOK)
}
