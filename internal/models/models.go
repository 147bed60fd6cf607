package models

import "github.com/shopspring/decimal"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"                    json:"id"`
	Name        string          `gorm:"not null"                                    json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;check:price>=0" json:"price"`
	Description string          `gorm:"not null"                                    json:"description"`
	Category    string          `gorm:"not null;index"                              json:"category"`
	ImagePath   string          `gorm:"column:image;not null"                       json:"image"`
}

// CartItem is one user's held quantity of one product.
type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                       json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product;not null"     json:"userId"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product;not null"     json:"productId"`
	Quantity  int  `gorm:"not null;default:1;check:quantity>0"            json:"quantity"`

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine is a cart row joined with its product.
type CartLine struct {
	CartID      uint            `json:"cartId"`
	Quantity    int             `json:"quantity"`
	ProductID   uint            `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

func All() []any {
	return []any{&User{}, &Product{}, &CartItem{}}
}
