package request

type CreateBlogRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=150"`
	Content string `json:"content" validate:"required"`
}

type UpdateBlogRequest struct {
	Title   string `json:"title" validate:"omitempty,min=3,max=150"`
	Content string `json:"content" validate:"omitempty"`
}
