// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopdev/eshop-backend/internal/config"
	"github.com/eshopdev/eshop-backend/internal/models"
)

func TestPaymentServiceOfflineMode(t *testing.T) {
	payments := NewPaymentService(&config.PaymentConfig{Currency: "usd"})
	assert.False(t, payments.Enabled())

	result, err := payments.ChargeCard(125.50, "pm_something", "Sale at store 1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusOK, result.Status)
	assert.Nil(t, result.Reference)
}

func TestPaymentServiceOfflineRefundIsNoop(t *testing.T) {
	payments := NewPaymentService(&config.PaymentConfig{Currency: "usd"})

	require.NoError(t, payments.RefundCard("pi_does_not_exist"))
	require.NoError(t, payments.RefundCard(""))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(0), toMinorUnits(0))
	assert.Equal(t, int64(100), toMinorUnits(1))
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
	assert.Equal(t, int64(10), toMinorUnits(0.1))
}
