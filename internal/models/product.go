// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string     `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description *string    `json:"description,omitempty" gorm:"size:2000"`
	Price       float64    `json:"price" gorm:"not null"`
	Rating      float64    `json:"rating" gorm:"default:0"` // derived from reviews, never authoritative
	Images      StringList `json:"images" gorm:"type:text"`

	Categories []Category `json:"categories,omitempty" gorm:"many2many:product_categories"`
	Suppliers  []Supplier `json:"suppliers,omitempty" gorm:"many2many:product_suppliers"`
	Reviews    []Review   `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}
