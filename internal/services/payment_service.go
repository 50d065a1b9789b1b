// internal/services/payment_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"

	"github.com/eshopdev/eshop-backend/internal/config"
	"github.com/eshopdev/eshop-backend/internal/models"
)

// PaymentService charges card sales through Stripe. When no secret key is
// configured it operates in offline mode and approves card payments locally,
// which keeps development and test environments free of external calls.
type PaymentService struct {
	cfg     *config.PaymentConfig
	enabled bool
}

// ChargeResult is what the sale pipeline records about a payment attempt.
type ChargeResult struct {
	Status    models.PaymentStatus
	Reference *string
}

func NewPaymentService(cfg *config.PaymentConfig) *PaymentService {
	enabled := cfg.StripeSecretKey != ""
	if enabled {
		stripe.Key = cfg.StripeSecretKey
	} else {
		logrus.Warn("Stripe secret key not configured, card payments run in offline mode")
	}

	return &PaymentService{cfg: cfg, enabled: enabled}
}

// Enabled reports whether a Stripe key is configured. Callers skip the charge
// entirely in offline mode.
func (p *PaymentService) Enabled() bool {
	return p.enabled
}

// ChargeCard attempts to collect amount for a card sale using the given Stripe
// payment method, falling back to the configured default when none is
// submitted. A declined charge is not an error: the sale is still recorded
// with payment status DECLINED.
func (p *PaymentService) ChargeCard(amount float64, paymentMethodID, description string) (*ChargeResult, error) {
	if !p.enabled {
		return &ChargeResult{Status: models.PaymentStatusOK}, nil
	}

	if paymentMethodID == "" {
		paymentMethodID = p.cfg.DefaultPaymentMethod
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(p.cfg.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Description: stripe.String(description),
	}
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
		params.Confirm = stripe.Bool(true)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Type == stripe.ErrorTypeCard {
			logrus.WithFields(logrus.Fields{
				"code":   stripeErr.Code,
				"amount": amount,
			}).Warn("Card payment declined")
			return &ChargeResult{Status: models.PaymentStatusDeclined}, nil
		}
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &ChargeResult{Status: models.PaymentStatusDeclined, Reference: &pi.ID}, nil
	}

	return &ChargeResult{Status: models.PaymentStatusOK, Reference: &pi.ID}, nil
}

// RefundCard reverses a previously captured card payment. Sales without a
// payment reference (cash, offline mode) have nothing to reverse upstream.
func (p *PaymentService) RefundCard(paymentReference string) error {
	if !p.enabled || paymentReference == "" {
		return nil
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentReference),
	}

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("refunding payment %s: %w", paymentReference, err)
	}

	return nil
}

func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
