package transport

import "github.com/shopspring/decimal"

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateProductRequest is bound from a multipart form; the image part is
// read separately.
type CreateProductRequest struct {
	Name        string `form:"name"`
	Price       string `form:"price"`
	Description string `form:"description"`
	Category    string `form:"category"`

	Image     []byte `form:"-"`
	ImageName string `form:"-"`
}

type CreateProductResponse struct {
	Success string `json:"success"`
	Price   string `json:"price"`
}

type SearchMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type AddToCartRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// UpdateQuantityRequest keeps Quantity as a pointer so an absent field can be
// told apart from an explicit zero.
type UpdateQuantityRequest struct {
	UserID   uint `json:"userId"`
	Quantity *int `json:"quantity"`
}

type RemoveFromCartRequest struct {
	UserID uint `json:"userId"`
}

type CheckoutRequest struct {
	UserID  uint   `json:"userId"`
	CartIDs []uint `json:"cartIds"`
}

func FormatPrice(symbol string, price decimal.Decimal) string {
	return symbol + price.StringFixed(2)
}
