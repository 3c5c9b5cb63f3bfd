package response

import (
	"time"

	"naturehatch-backend/internal/data/entity"
)

type BlogResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BlogToResponse(blog *entity.Blog) BlogResponse {
	return BlogResponse{
		ID:        blog.ID.Hex(),
		Title:     blog.Title,
		Content:   blog.Content,
		ImageURL:  blog.ImageURL,
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
	}
}
