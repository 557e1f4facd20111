package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
)

// MockPaymentProvider implements service.PaymentProvider for testing
type MockPaymentProvider struct {
	CreateCheckoutSessionFn   func(ctx context.Context, schoolID uuid.UUID, customerEmail string) (string, error)
	VerifyCheckoutCompletedFn func(payload []byte, signatureHeader string) (uuid.UUID, bool, error)

	// Default values used when functions aren't explicitly defined
	CheckoutURL string
	SchoolID    uuid.UUID
	Completed   bool
	Err         error

	// Call tracking for verification
	CreateCheckoutCalledWith struct {
		SchoolID      uuid.UUID
		CustomerEmail string
	}
	CreateCheckoutCallCount int
}

var _ service.PaymentProvider = (*MockPaymentProvider)(nil)

// CreateCheckoutSession implements the service.PaymentProvider interface
func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	schoolID uuid.UUID,
	customerEmail string,
) (string, error) {
	m.CreateCheckoutCalledWith.SchoolID = schoolID
	m.CreateCheckoutCalledWith.CustomerEmail = customerEmail
	m.CreateCheckoutCallCount++

	if m.CreateCheckoutSessionFn != nil {
		return m.CreateCheckoutSessionFn(ctx, schoolID, customerEmail)
	}
	return m.CheckoutURL, m.Err
}

// VerifyCheckoutCompleted implements the service.PaymentProvider interface
func (m *MockPaymentProvider) VerifyCheckoutCompleted(
	payload []byte,
	signatureHeader string,
) (uuid.UUID, bool, error) {
	if m.VerifyCheckoutCompletedFn != nil {
		return m.VerifyCheckoutCompletedFn(payload, signatureHeader)
	}
	return m.SchoolID, m.Completed, m.Err
}
