// Package payment provides the Stripe-backed implementation of the premium
// upgrade billing flow: hosted checkout sessions and webhook verification.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/fahrvergleich/fahrvergleich-api/internal/config"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/logger"
)

// Metadata key carrying the school ID through the Stripe checkout round-trip.
const metadataSchoolID = "schoolId"

// checkoutSessionCompleted is the only webhook event type we act on.
const checkoutSessionCompleted = "checkout.session.completed"

// StripeProvider creates Stripe checkout sessions for premium upgrades and
// verifies incoming webhook events.
type StripeProvider struct {
	api           *client.API
	priceID       string
	webhookSecret string
	successURL    string
	cancelURL     string
	logger        *slog.Logger
}

// NewStripeProvider creates a StripeProvider from the payment configuration.
// If log is nil, a default logger will be used.
func NewStripeProvider(cfg config.PaymentConfig, log *slog.Logger) (*StripeProvider, error) {
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	if cfg.PremiumPriceID == "" {
		return nil, fmt.Errorf("premium price ID is required")
	}

	if log == nil {
		log = slog.Default()
	}

	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)

	return &StripeProvider{
		api:           api,
		priceID:       cfg.PremiumPriceID,
		webhookSecret: cfg.StripeWebhookSecret,
		successURL:    cfg.CheckoutBaseURL + "/dashboard?upgrade=success",
		cancelURL:     cfg.CheckoutBaseURL + "/dashboard?upgrade=cancelled",
		logger:        log.With(slog.String("component", "stripe_provider")),
	}, nil
}

// CreateCheckoutSession creates a hosted Stripe checkout session for the
// premium subscription and returns its redirect URL. The school ID travels
// in the session metadata so the webhook can attribute the completed payment.
func (p *StripeProvider) CreateCheckoutSession(
	ctx context.Context,
	schoolID uuid.UUID,
	customerEmail string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(customerEmail),
		SuccessURL:    stripe.String(p.successURL),
		CancelURL:     stripe.String(p.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata(metadataSchoolID, schoolID.String())

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		log.Error("failed to create stripe checkout session",
			slog.String("error", err.Error()),
			slog.String("school_id", schoolID.String()))
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	log.Info("stripe checkout session created",
		slog.String("school_id", schoolID.String()),
		slog.String("session_id", sess.ID))
	return sess.URL, nil
}

// VerifyCheckoutCompleted verifies a webhook payload against its signature
// header and, if the event is a completed checkout session, returns the
// school ID from the session metadata. The second return value is false for
// event types we don't act on.
func (p *StripeProvider) VerifyCheckoutCompleted(
	payload []byte,
	signatureHeader string,
) (uuid.UUID, bool, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if string(event.Type) != checkoutSessionCompleted {
		p.logger.Debug("ignoring stripe event",
			slog.String("event_type", string(event.Type)))
		return uuid.Nil, false, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to parse checkout session payload: %w", err)
	}

	raw, ok := sess.Metadata[metadataSchoolID]
	if !ok || raw == "" {
		return uuid.Nil, false, fmt.Errorf("checkout session %s has no school metadata", sess.ID)
	}

	schoolID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("invalid school ID in session metadata: %w", err)
	}

	return schoolID, true, nil
}
