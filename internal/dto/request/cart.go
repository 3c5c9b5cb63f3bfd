package request

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type ClearItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
