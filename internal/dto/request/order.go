package request

type OrderItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Products        []OrderItemPayload `json:"products" validate:"required,min=1,dive"`
	TotalAmount     *float64           `json:"totalAmount,omitempty"`
	ShippingAddress string             `json:"shippingAddress" validate:"required,min=10,max=300"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required,oneof=cod online"`
	ShippingMethod  string             `json:"shippingMethod" validate:"omitempty,oneof=standard express"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
