// internal/models/supplier.go
package models

type Supplier struct {
	BaseModel
	Name    string  `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Phone   string  `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	Email   string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Rating  float64 `json:"rating" gorm:"default:0"`
	LogoURL *string `json:"logo_url,omitempty" gorm:"size:512"`

	// Manager is the SUPPLIERMANAGER user attached to this supplier, if
	// any. The link lives on the user row (users.supplier_id).
	Manager *User `json:"manager,omitempty" gorm:"foreignKey:SupplierID"`

	Products []Product `json:"products,omitempty" gorm:"many2many:product_suppliers"`
}
