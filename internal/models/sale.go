// internal/models/sale.go
package models

type Sale struct {
	BaseModel
	ClientID uint `json:"client_id" gorm:"not null;index"`
	SellerID uint `json:"seller_id" gorm:"not null;index"`
	StoreID  uint `json:"store_id" gorm:"not null;index"`

	// TotalAmount is computed from the items at creation and never
	// recalculated afterwards.
	TotalAmount      float64       `json:"total_amount" gorm:"not null"`
	PaymentMethod    PaymentMethod `json:"payment_method" gorm:"type:varchar(10);not null"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"type:varchar(10);default:'OK';not null"`
	PaymentReference *string       `json:"payment_reference,omitempty" gorm:"size:255"`

	Client *User      `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Seller *User      `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Store  *Store     `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Items  []SaleItem `json:"sale_items,omitempty" gorm:"foreignKey:SaleID"`
}

type SaleItem struct {
	BaseModel
	SaleID    uint `json:"sale_id" gorm:"not null;index"`
	ProductID uint `json:"product_id" gorm:"not null;index"`
	Quantity  int  `json:"quantity" gorm:"not null"`

	// PriceAtSale is the product price captured when the sale was created.
	PriceAtSale float64 `json:"price_at_sale" gorm:"not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
