// internal/models/review.go
package models

type Review struct {
	BaseModel
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description *string    `json:"description,omitempty" gorm:"size:2000"`
	Liked       *string    `json:"liked,omitempty" gorm:"size:1000"`
	Disliked    *string    `json:"disliked,omitempty" gorm:"size:1000"`
	Images      StringList `json:"images" gorm:"type:text"`
	Rating      float64    `json:"rating" gorm:"not null"`

	// One review per (user, product) pair.
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	ProductID uint `json:"product_id" gorm:"not null;uniqueIndex:idx_reviews_user_product"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
