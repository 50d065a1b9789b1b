// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	FirstName    string  `json:"first_name" gorm:"size:50;not null"`
	LastName     *string `json:"last_name,omitempty" gorm:"size:50"`
	Username     *string `json:"username,omitempty" gorm:"uniqueIndex;size:50"`
	Email        string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string  `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	AvatarURL    *string `json:"avatar_url,omitempty" gorm:"size:512"`
	PasswordHash string  `json:"-" gorm:"size:255;not null"`
	Role         Role    `json:"role" gorm:"type:varchar(20);default:'USER';not null"`
	Status       Status  `json:"status" gorm:"type:varchar(20);default:'ACTIVE';not null"`

	// Role-dependent attachments. Exactly one of {StoreID+Position,
	// SupplierID} may be set, and only when Role matches.
	StoreID    *uint   `json:"store_id,omitempty"`
	Position   *string `json:"position,omitempty" gorm:"size:50"`
	SupplierID *uint   `json:"supplier_id,omitempty"`

	// Relationships
	Store    *Store    `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

// ManagesSupplier reports whether this user is the manager of the given
// supplier.
func (u *User) ManagesSupplier(supplierID uint) bool {
	return u.SupplierID != nil && *u.SupplierID == supplierID
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Principal builds the request-scoped identity for this user.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role, Status: u.Status}
}
