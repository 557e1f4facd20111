package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// PaymentProvider abstracts the external payment collaborator. The Stripe
// implementation lives in internal/platform/payment.
type PaymentProvider interface {
	// CreateCheckoutSession creates a hosted checkout session for the
	// premium upgrade and returns its redirect URL.
	CreateCheckoutSession(ctx context.Context, schoolID uuid.UUID, customerEmail string) (string, error)

	// VerifyCheckoutCompleted verifies a webhook payload against its
	// signature header. If the event is a completed checkout it returns the
	// school ID from the session metadata and true; for other event types
	// it returns false with no error.
	VerifyCheckoutCompleted(payload []byte, signatureHeader string) (uuid.UUID, bool, error)
}

// BillingService provides the premium upgrade flow: starting a checkout
// session and processing the payment provider's webhook.
type BillingService interface {
	// StartPremiumCheckout creates a checkout session for the admin's
	// school and returns the redirect URL.
	// Returns ErrNoSchool if the admin owns no school.
	StartPremiumCheckout(ctx context.Context, adminID uuid.UUID) (string, error)

	// HandleWebhook verifies and processes a payment webhook. A completed
	// checkout flips the premium flag on the school named in the session
	// metadata. Unrecognized event types are acknowledged without effect.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

// BillingServiceImpl implements the BillingService interface
type BillingServiceImpl struct {
	adminStore  store.AdminStore
	schoolStore store.SchoolStore
	provider    PaymentProvider
	logger      *slog.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(
	adminStore store.AdminStore,
	schoolStore store.SchoolStore,
	provider PaymentProvider,
	logger *slog.Logger,
) BillingService {
	return &BillingServiceImpl{
		adminStore:  adminStore,
		schoolStore: schoolStore,
		provider:    provider,
		logger:      logger.With("component", "billing_service"),
	}
}

// StartPremiumCheckout creates a checkout session for the admin's school.
func (s *BillingServiceImpl) StartPremiumCheckout(
	ctx context.Context,
	adminID uuid.UUID,
) (string, error) {
	school, err := s.schoolStore.GetByAdminID(ctx, adminID)
	if err != nil {
		if errors.Is(err, store.ErrSchoolNotFound) {
			return "", ErrNoSchool
		}
		s.logger.Error("failed to retrieve school for checkout",
			"error", err,
			"admin_id", adminID)
		return "", fmt.Errorf("failed to retrieve school: %w", err)
	}

	admin, err := s.adminStore.GetByID(ctx, adminID)
	if err != nil {
		s.logger.Error("failed to retrieve admin for checkout",
			"error", err,
			"admin_id", adminID)
		return "", fmt.Errorf("failed to retrieve admin: %w", err)
	}

	url, err := s.provider.CreateCheckoutSession(ctx, school.ID, admin.Email)
	if err != nil {
		s.logger.Error("failed to create checkout session",
			"error", err,
			"school_id", school.ID)
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info("premium checkout started",
		"admin_id", adminID,
		"school_id", school.ID)

	return url, nil
}

// HandleWebhook verifies the webhook signature and applies a completed
// checkout to the school record.
func (s *BillingServiceImpl) HandleWebhook(
	ctx context.Context,
	payload []byte,
	signatureHeader string,
) error {
	schoolID, completed, err := s.provider.VerifyCheckoutCompleted(payload, signatureHeader)
	if err != nil {
		s.logger.Warn("webhook verification failed",
			"error", err)
		return fmt.Errorf("webhook verification failed: %w", err)
	}

	if !completed {
		// Event type we don't act on; acknowledge so the provider stops
		// retrying.
		return nil
	}

	if err := s.schoolStore.SetPremium(ctx, schoolID, true); err != nil {
		s.logger.Error("failed to apply premium upgrade",
			"error", err,
			"school_id", schoolID)
		return fmt.Errorf("failed to apply premium upgrade: %w", err)
	}

	s.logger.Info("school upgraded to premium",
		"school_id", schoolID)

	return nil
}
