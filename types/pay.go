package types

type PrepayRequest struct {
	OrderSn string `json:"order_sn" binding:"required"`
	OpenID  string `json:"open_id" binding:"required"`
}

type CartAddRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  uint32 `json:"quantity" binding:"required,min=1"`
}

type CartItem struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    uint32 `json:"quantity"`
	Stock       uint32 `json:"stock"`
	CoverImage  string `json:"cover_image"`
}

type CartResponse struct {
	Items []CartItem `json:"items"`
}
