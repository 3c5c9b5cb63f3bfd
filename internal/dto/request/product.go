package request

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"required,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Category    string  `json:"category" validate:"required,max=60"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"omitempty,min=2,max=100"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Category    string   `json:"category" validate:"omitempty,max=60"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}
