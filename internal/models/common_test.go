// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListScanNil(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)
}

func TestStringListEmptyValue(t *testing.T) {
	var list StringList
	value, err := list.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Empty(t, scanned)
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles() {
		assert.True(t, role.Valid(), string(role))
	}
	assert.False(t, Role("WIZARD").Valid())
	assert.False(t, Role("").Valid())
}

func TestStatusValid(t *testing.T) {
	for _, status := range Statuses() {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, Status("FROZEN").Valid())
}

func TestPaymentEnums(t *testing.T) {
	assert.ElementsMatch(t, []PaymentMethod{PaymentMethodCard, PaymentMethodCash}, PaymentMethods())
	assert.ElementsMatch(t,
		[]PaymentStatus{PaymentStatusOK, PaymentStatusDeclined, PaymentStatusRefund},
		PaymentStatuses())
}

func TestUserPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Password123"))

	assert.NotEqual(t, "Password123", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Password123"))
	assert.Error(t, user.CheckPassword("password123"))
}

func TestManagesSupplier(t *testing.T) {
	supplierID := uint(5)
	user := &User{SupplierID: &supplierID}

	assert.True(t, user.ManagesSupplier(5))
	assert.False(t, user.ManagesSupplier(6))
	assert.False(t, (&User{}).ManagesSupplier(5))
}
