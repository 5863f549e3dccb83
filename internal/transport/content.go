package transport

import "github.com/google/uuid"

// PortfolioRequest is used for create and partial update.
type PortfolioRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
}

type ReviewRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Rating    float64   `json:"rating"`
	Feedback  string    `json:"feedback"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email" validate:"omitempty,email"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Number  string `json:"number"`
	Message string `json:"message"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// BlogPostRequest is used for create and partial update.
type BlogPostRequest struct {
	Title    *string `json:"title"`
	Excerpt  *string `json:"excerpt"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
}
