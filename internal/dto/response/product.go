package response

import (
	"time"

	"naturehatch-backend/internal/data/entity"
)

type ReviewResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Quantity    int              `json:"quantity"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
	Rating      float64          `json:"rating"`
	Reviews     []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	reviews := make([]ReviewResponse, len(product.Reviews))
	for i, review := range product.Reviews {
		reviews[i] = ReviewResponse{
			UserID:    review.UserID.Hex(),
			Name:      review.Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
	}

	return ProductResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		Rating:      product.Rating,
		Reviews:     reviews,
		CreatedAt:   product.CreatedAt,
	}
}

// ProductToListResponse omits reviews for list views
func ProductToListResponse(product *entity.Product) ProductResponse {
	resp := ProductToResponse(product)
	resp.Reviews = nil
	return resp
}
