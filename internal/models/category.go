// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string  `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description *string `json:"description,omitempty" gorm:"size:1000"`
	ImageURL    *string `json:"image_url,omitempty" gorm:"size:512"`

	Products []Product `json:"products,omitempty" gorm:"many2many:product_categories"`
}
