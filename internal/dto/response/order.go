package response

import (
	"time"

	"naturehatch-backend/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"order_number"`
	UserID          string             `json:"user_id"`
	Products        []OrderItemResponse `json:"products"`
	TotalAmount     float64            `json:"total_amount"`
	PaymentMethod   entity.PaymentMethod  `json:"payment_method"`
	ShippingMethod  entity.ShippingMethod `json:"shipping_method"`
	ShippingAddress string             `json:"shipping_address"`
	Status          entity.OrderStatus `json:"status"`
	OrderedAt       time.Time          `json:"ordered_at"`
}

// OrderToResponse populates product names for display. Price always comes
// from the order item snapshot, never from the live product, so deleted or
// repriced products keep their recorded amounts.
func OrderToResponse(order *entity.Order, products map[primitive.ObjectID]*entity.Product) OrderResponse {
	items := make([]OrderItemResponse, len(order.Products))
	for i, item := range order.Products {
		itemResp := OrderItemResponse{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Price * float64(item.Quantity),
		}

		if product, ok := products[item.ProductID]; ok && product != nil {
			itemResp.Name = product.Name
			itemResp.ImageURL = product.ImageURL
		}

		items[i] = itemResp
	}

	return OrderResponse{
		ID:              order.ID.Hex(),
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID.Hex(),
		Products:        items,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   order.PaymentMethod,
		ShippingMethod:  order.ShippingMethod,
		ShippingAddress: order.ShippingAddress,
		Status:          order.Status,
		OrderedAt:       order.OrderedAt,
	}
}
