// internal/models/store.go
package models

type Store struct {
	BaseModel
	Name        string  `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Address     string  `json:"address" gorm:"uniqueIndex;size:255;not null"`
	Email       string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	StoreImage  *string `json:"store_image,omitempty" gorm:"size:512"`
	OpeningTime string  `json:"opening_time" gorm:"size:5;not null"` // "HH:MM"
	ClosingTime string  `json:"closing_time" gorm:"size:5;not null"`

	Staff []User `json:"staff,omitempty" gorm:"foreignKey:StoreID"`
	Sales []Sale `json:"sales,omitempty" gorm:"foreignKey:StoreID"`
}
