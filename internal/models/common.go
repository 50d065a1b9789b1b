// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringList stores a JSON-encoded string slice in a single text column so
// the same models run on both postgres and sqlite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Enums
type Role string

const (
	RoleUser            Role = "USER"
	RoleEmployee        Role = "EMPLOYEE"
	RoleAdmin           Role = "ADMIN"
	RoleSupplierManager Role = "SUPPLIERMANAGER"
)

func Roles() []Role {
	return []Role{RoleUser, RoleEmployee, RoleAdmin, RoleSupplierManager}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployee, RoleAdmin, RoleSupplierManager:
		return true
	}
	return false
}

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBanned  Status = "BANNED"
	StatusDeleted Status = "DELETED"
)

func Statuses() []Status {
	return []Status{StatusActive, StatusBanned, StatusDeleted}
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBanned, StatusDeleted:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCash PaymentMethod = "CASH"
)

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCard, PaymentMethodCash}
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCash
}

type PaymentStatus string

const (
	PaymentStatusOK       PaymentStatus = "OK"
	PaymentStatusDeclined PaymentStatus = "DECLINED"
	PaymentStatusRefund   PaymentStatus = "REFUND"
)

func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStatusOK, PaymentStatusDeclined, PaymentStatusRefund}
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusOK, PaymentStatusDeclined, PaymentStatusRefund:
		return true
	}
	return false
}

// Principal is the resolved identity of the caller for one request. It is
// passed explicitly into service calls rather than read from ambient state.
type Principal struct {
	UserID uint   `json:"user_id"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
