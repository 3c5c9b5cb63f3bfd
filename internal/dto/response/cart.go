package response

import (
	"naturehatch-backend/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLineResponse is a cart line resolved against the product catalog
type CartLineResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	CartTotal float64            `json:"cart_total"`
}

// CartToResponse populates cart lines from the given products. Lines whose
// product no longer exists are skipped rather than failing the whole cart.
func CartToResponse(lines []entity.CartLine, products map[primitive.ObjectID]*entity.Product) CartResponse {
	resp := CartResponse{Items: []CartLineResponse{}}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok || product == nil {
			continue
		}

		subtotal := product.Price * float64(line.Quantity)
		resp.Items = append(resp.Items, CartLineResponse{
			ProductID: line.ProductID.Hex(),
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		resp.CartTotal += subtotal
	}

	return resp
}
