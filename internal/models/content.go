package models

import (
	"time"

	"github.com/google/uuid"
)

type Portfolio struct {
	Base
	Name        string      `json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Images      StringArray `json:"images"`
	Category    string      `gorm:"index"     json:"category"`
}

const (
	MinRating = 0.5
	MaxRating = 5
)

type Review struct {
	Base
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	UserName  string    `gorm:"not null"                 json:"userName"`
	Email     string    `gorm:"not null"                 json:"email"`
	Rating    float64   `gorm:"not null"                 json:"rating"`
	Feedback  string    `gorm:"type:text;not null"       json:"feedback"`
}

type Contact struct {
	Base
	Name    string `gorm:"not null"           json:"name"`
	Email   string `gorm:"not null"           json:"email"`
	Number  string `gorm:"not null"           json:"number"`
	Message string `gorm:"type:text;not null" json:"message"`
}

type Subscriber struct {
	Base
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"not null"             json:"subscribedAt"`
}

type BlogPost struct {
	Base
	Title    string `gorm:"not null"           json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Author   string `json:"author"`
	Category string `gorm:"index"              json:"category"`
	Image    string `json:"image,omitempty"`
}
